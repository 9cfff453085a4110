// Package normalize renames files and folders whose names contain
// characters that break syncing a music library between filesystems.
//
// # Rules
//
// A name needs repair when it contains one of the illegal characters
// (see model.IllegalChars) or ends with a period. Repair applies:
//   - ':' becomes '-'; when exactly one side of the colon has a space, the
//     other side gets one too ("A :B" and "A: B" both become "A - B")
//   - '"' becomes '\''
//   - every other illegal character is removed
//   - trailing "..." or "." is stripped until no trailing period remains
//
// # Walking
//
// Normalizer.Run repairs every file in the tree first and every folder
// afterwards, so folder renames never invalidate file paths computed in the
// same run:
//
//	n := normalize.New(normalize.Options{}, logger, func(e progress.Event) {
//	    fmt.Println(e.Message) // "Renamed item: /music/What? -> /music/What"
//	})
//	result, err := n.Run(ctx, "/music")
//
// Running the normalizer a second time over the same tree renames nothing.
package normalize
