// Package sink provides table widgets that receive published renderings.
//
// Memory records the table in memory. XLSX mirrors it into a spreadsheet
// workbook. SocketIO forwards every call as an event to a remote widget.
// All of them implement render.Sink.
package sink
