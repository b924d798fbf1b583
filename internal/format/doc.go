package format

// Package format turns raw media metadata into the bounded, ordered list of
// quality choices offered as inline buttons, and picks the best preview
// thumbnail. Pure transforms, no I/O.
