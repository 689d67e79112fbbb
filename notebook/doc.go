// Package notebook reads Jupyter notebook documents.
//
// Notebooks are stored as nbformat JSON. This package decodes version 4
// documents directly and upgrades version 3 documents (worksheets, pyout,
// pyerr, heading cells) to the version 4 model on read, so callers only ever
// see a single shape:
//
//	nb, err := notebook.Read("analysis.ipynb")
//	if err != nil {
//	    return err
//	}
//	for _, cell := range nb.Cells {
//	    fmt.Println(cell.Type, cell.Source)
//	}
//
// Malformed documents are reported with an error wrapping [ErrMalformed].
// Reading a path that does not exist returns an error satisfying
// errors.Is(err, fs.ErrNotExist).
package notebook
