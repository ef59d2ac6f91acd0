package pipeline

// Internal helpers exposed to the external test package.
var (
	Risk        = risk
	Fingerprint = fingerprint
	Recommend   = recommend
	Stride      = stride
)
