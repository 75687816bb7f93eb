package csphead

// Builder assembles a Header through chained directive calls. Validation
// failures are recorded rather than returned per call; the first one
// surfaces from Build or Err.
type Builder struct {
	header *Header
	err    error
}

// NewBuilder creates a Builder for an enforcing policy.
func NewBuilder() *Builder {
	return &Builder{header: New()}
}

// NewReportOnlyBuilder creates a Builder for a report-only policy.
func NewReportOnlyBuilder() *Builder {
	return &Builder{header: NewReportOnly()}
}

// Set replaces a directive with the provided sources.
func (b *Builder) Set(directive string, sources ...string) *Builder {
	if b.err != nil {
		return b
	}
	b.err = b.header.SetDirective(directive, sources...)
	return b
}

// Add appends sources to a directive, keeping any already set.
func (b *Builder) Add(directive string, sources ...string) *Builder {
	if b.err != nil {
		return b
	}
	existing, _ := b.header.Directive(directive)
	b.err = b.header.SetDirective(directive, append(existing, sources...)...)
	return b
}

// DefaultSrc sets the default-src directive.
func (b *Builder) DefaultSrc(sources ...string) *Builder {
	return b.Set(DefaultSrc, sources...)
}

// ScriptSrc sets the script-src directive.
func (b *Builder) ScriptSrc(sources ...string) *Builder {
	return b.Set(ScriptSrc, sources...)
}

// StyleSrc sets the style-src directive.
func (b *Builder) StyleSrc(sources ...string) *Builder {
	return b.Set(StyleSrc, sources...)
}

// ImgSrc sets the img-src directive.
func (b *Builder) ImgSrc(sources ...string) *Builder {
	return b.Set(ImgSrc, sources...)
}

// ConnectSrc sets the connect-src directive.
func (b *Builder) ConnectSrc(sources ...string) *Builder {
	return b.Set(ConnectSrc, sources...)
}

// FontSrc sets the font-src directive.
func (b *Builder) FontSrc(sources ...string) *Builder {
	return b.Set(FontSrc, sources...)
}

// FrameAncestors sets the frame-ancestors directive.
func (b *Builder) FrameAncestors(sources ...string) *Builder {
	return b.Set(FrameAncestors, sources...)
}

// ObjectSrc sets the object-src directive.
func (b *Builder) ObjectSrc(sources ...string) *Builder {
	return b.Set(ObjectSrc, sources...)
}

// BaseURI sets the base-uri directive.
func (b *Builder) BaseURI(sources ...string) *Builder {
	return b.Set(BaseURI, sources...)
}

// FormAction sets the form-action directive.
func (b *Builder) FormAction(sources ...string) *Builder {
	return b.Set(FormAction, sources...)
}

// ReportURI sets the report-uri directive.
func (b *Builder) ReportURI(uris ...string) *Builder {
	return b.Set(ReportURI, uris...)
}

// ReportTo sets the report-to directive.
func (b *Builder) ReportTo(group string) *Builder {
	return b.Set(ReportTo, group)
}

// Err returns the first recorded validation error.
func (b *Builder) Err() error {
	return b.err
}

// Build returns the assembled header, or the first recorded error.
func (b *Builder) Build() (*Header, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.header, nil
}

// MustBuild is Build for chained literals; it panics on error.
func (b *Builder) MustBuild() *Header {
	header, err := b.Build()
	if err != nil {
		panic(err)
	}
	return header
}
