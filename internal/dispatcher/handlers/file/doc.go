// Package file provides handlers for saving the open document.
//
//   - file.save: write the buffer back to its file
//   - file.saveAs: write the buffer to Args.Text (or Args.Extra["path"])
//     and keep editing that file
//
// Writing is delegated to execctx.DocumentInterface, which keeps the line
// ending the file was read with.
package file
