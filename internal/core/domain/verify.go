package domain

// VerifyStatus is the outcome of re-hashing one installed file.
type VerifyStatus string

const (
	// VerifyOK means the file matches its recorded checksum.
	VerifyOK VerifyStatus = "ok"
	// VerifyMissing means the file does not exist.
	VerifyMissing VerifyStatus = "missing"
	// VerifyMismatch means the file digest differs from the recorded checksum.
	VerifyMismatch VerifyStatus = "mismatch"
	// VerifyUnchecked means the entry has no checksum to compare against.
	VerifyUnchecked VerifyStatus = "unchecked"
	// VerifyError means the file could not be read or hashed.
	VerifyError VerifyStatus = "error"
)

// VerifyResult reports the verification of one entry.
type VerifyResult struct {
	Slug   string
	Path   string
	Status VerifyStatus
	Actual Checksum
	Err    error
}

// OK reports whether the result does not indicate a problem.
func (r VerifyResult) OK() bool {
	return r.Status == VerifyOK || r.Status == VerifyUnchecked
}
