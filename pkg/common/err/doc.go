// Package err provides the error type shared across the module.
//
// Every failure the engine reports falls into one of four categories:
//
//   - CodeNotFound: a referenced fingerprint or path is absent
//   - CodeMalformedRecord: stored text does not match its grammar
//   - CodeDuplicateEntry: a staging or tree insertion collides on a name
//   - CodeIOFailure: the underlying storage failed
//
// # Defining package errors
//
// Packages declare a pkgName constant and build errors through New:
//
//	const pkgName = "tree"
//
//	func malformed(op, msg string, cause error) error {
//	    return err.New(pkgName, err.CodeMalformedRecord, op, msg, cause)
//	}
//
// # Checking errors
//
// Errors match by code, so the sentinels work across package boundaries:
//
//	if errors.Is(e, err.ErrNotFound) {
//	    // handle missing object
//	}
//
// Structured context can be attached with WithContext:
//
//	err.New("store", err.CodeNotFound, "get", "", nil).WithContext("fingerprint", fp)
package err
