// Package view turns an encoder.Output into the data a chart or table needs:
// step traces, edge markers, delta arrows with labels, delta bar series and
// edge table rows. RenderHTML draws the waveform and delta charts as a
// standalone HTML page.
package view
