// Package formats provides parsers for Wavefront OBJ geometry and MTL
// material libraries.
//
// Parsing is pure: the parsers work on byte slices, resolve no files and do
// not check material references. That happens when a mesh is built.
package formats
