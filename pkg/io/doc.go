// Package io reads chart requests from files and writes rendered pages
// back out.
//
// # Import
//
// [ImportFile] dispatches on the file extension:
//
//   - .json: the request object as sent to the API
//   - .xlsx: a spreadsheet with the titles in A1 and A2, a header row
//     naming the columns (ticker, name, logo, driver, change_pct) and one
//     record per following row
//
// Both return the loosely typed value the validator expects, so a
// spreadsheet reports missing fields exactly like JSON does.
//
// # Export
//
// Pages are named movers_{title}_p{n}.{ext} (see [PageFileName]).
// [WriteArchive] bundles every page into a zip with one folder per
// format, and [ExportPages] writes loose files into a directory.
package io
