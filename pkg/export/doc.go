// Package export implements the side-effecting operations on a generated
// record: saving the branded PNG, copying the link, and opening it.
//
// None of the operations touch the registry the record came from.
//
//	ex := export.New(comp, "out", export.NewOSC52Clipboard(os.Stderr), export.BrowserOpener{}, logger)
//	path, err := ex.Download(ctx, rec, logoRef)   // out/qr-table-5---drinks.png
//	err = ex.CopyURL(rec)
//	err = ex.Preview(rec)
package export
