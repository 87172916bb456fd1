package ot

import "fmt"

// ErrorKind classifies a font decoding error.
type ErrorKind int

const (
	// KindOutOfBounds indicates a read or seek past the end of the font's byte buffer.
	KindOutOfBounds ErrorKind = iota
	// KindMalformedHeader indicates a font header or table directory too short or damaged.
	KindMalformedHeader
	// KindInvalidTag indicates table directory tag bytes which are not printable ASCII.
	KindInvalidTag
	// KindMissingTable indicates a required table is absent from the table directory.
	KindMissingTable
	// KindGlyphOffsetOutOfRange indicates a 'loca' entry resolving past the end of the font.
	KindGlyphOffsetOutOfRange
	// KindTruncatedGlyph indicates a glyph record ending before its declared content.
	KindTruncatedGlyph
	// KindMalformedGlyph indicates a glyph record with inconsistent content, e.g.
	// a simple glyph without contours.
	KindMalformedGlyph
)

// String returns a human-readable representation of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case KindOutOfBounds:
		return "OutOfBounds"
	case KindMalformedHeader:
		return "MalformedHeader"
	case KindInvalidTag:
		return "InvalidTag"
	case KindMissingTable:
		return "MissingTable"
	case KindGlyphOffsetOutOfRange:
		return "GlyphOffsetOutOfRange"
	case KindTruncatedGlyph:
		return "TruncatedGlyph"
	case KindMalformedGlyph:
		return "MalformedGlyph"
	}
	return "UNKNOWN"
}

// ErrorSeverity represents the severity level of a font decoding error.
type ErrorSeverity int

const (
	// SeverityCritical indicates a severe error that makes the font unusable or unreliable.
	SeverityCritical ErrorSeverity = iota
	// SeverityMajor indicates a significant error that may affect single glyphs
	// but doesn't prevent usage of the font.
	SeverityMajor
	// SeverityMinor indicates a minor issue that can be safely ignored in most cases.
	SeverityMinor
)

// String returns a human-readable representation of the error severity.
func (s ErrorSeverity) String() string {
	switch s {
	case SeverityCritical:
		return "CRITICAL"
	case SeverityMajor:
		return "MAJOR"
	case SeverityMinor:
		return "MINOR"
	}
	return "UNKNOWN"
}

// FontError represents an error encountered during font decoding.
// Errors are accumulated during decoding and can be inspected after it completes.
type FontError struct {
	Kind     ErrorKind     // classification of the failure
	Table    Tag           // the table where the error occurred (e.g., "glyf", "loca")
	Section  string        // specific section within the table (e.g., "Flags", "IndexToLocFormat")
	Issue    string        // human-readable description of the issue
	Severity ErrorSeverity // severity level of the error
	Offset   uint32        // byte offset in the font file where the error occurred (0 if unknown)
}

// Error implements the error interface.
func (e FontError) Error() string {
	if e.Offset > 0 {
		return fmt.Sprintf("[%s] %s %s/%s at offset %d: %s",
			e.Severity, e.Kind, e.Table, e.Section, e.Offset, e.Issue)
	}
	return fmt.Sprintf("[%s] %s %s/%s: %s", e.Severity, e.Kind, e.Table, e.Section, e.Issue)
}

// KindOf returns the classification of err, if err is a FontError;
// otherwise -1 and false.
func KindOf(err error) (ErrorKind, bool) {
	if fe, ok := err.(FontError); ok {
		return fe.Kind, true
	}
	return -1, false
}

// errBounds produces the error for cursor movement or reads outside the
// underlying byte buffer.
func errBounds(offset int) FontError {
	off := uint32(0)
	if offset > 0 {
		off = uint32(offset)
	}
	return FontError{
		Kind:     KindOutOfBounds,
		Section:  "Cursor",
		Issue:    "read or seek past buffer bounds",
		Severity: SeverityMajor,
		Offset:   off,
	}
}

// FontWarning represents a non-critical issue encountered during font decoding.
// Warnings indicate potential problems but do not prevent font usage.
type FontWarning struct {
	Table  Tag    // the table where the warning occurred
	Issue  string // human-readable description of the warning
	Offset uint32 // byte offset in the font file where the warning occurred (0 if unknown)
}

// String returns a human-readable representation of the warning.
func (w FontWarning) String() string {
	if w.Offset > 0 {
		return fmt.Sprintf("[WARNING] %s at offset %d: %s", w.Table, w.Offset, w.Issue)
	}
	return fmt.Sprintf("[WARNING] %s: %s", w.Table, w.Issue)
}

// errorCollector accumulates errors and warnings during font decoding.
// This is an internal helper used by the parser to collect issues as they are discovered.
type errorCollector struct {
	errors   []FontError
	warnings []FontWarning
}

// addError records a decoding error.
func (ec *errorCollector) addError(kind ErrorKind, table Tag, section string,
	issue string, severity ErrorSeverity, offset uint32) {
	ec.errors = append(ec.errors, FontError{
		Kind:     kind,
		Table:    table,
		Section:  section,
		Issue:    issue,
		Severity: severity,
		Offset:   offset,
	})
}

// collect records an error value, lifting plain errors into FontError.
func (ec *errorCollector) collect(err error, table Tag, section string) {
	if err == nil {
		return
	}
	if fe, ok := err.(FontError); ok {
		if fe.Table == 0 {
			fe.Table = table
		}
		ec.errors = append(ec.errors, fe)
		return
	}
	ec.addError(KindMalformedHeader, table, section, err.Error(), SeverityMajor, 0)
}

// addWarning records a decoding warning.
func (ec *errorCollector) addWarning(table Tag, issue string, offset uint32) {
	ec.warnings = append(ec.warnings, FontWarning{
		Table:  table,
		Issue:  issue,
		Offset: offset,
	})
}

// hasErrors returns true if any errors have been recorded.
func (ec *errorCollector) hasErrors() bool {
	return len(ec.errors) > 0
}
