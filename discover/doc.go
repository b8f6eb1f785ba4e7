// Package discover implements the scan → load → extract → order pipeline
// that turns a directory of unit definition files into an ordered set of
// loaded units plus a list of per-candidate load errors.
//
// One bad definition never aborts discovery of the others; only an
// unreadable base directory is fatal, since it indicates a misconfigured
// host rather than a broken unit.
package discover
