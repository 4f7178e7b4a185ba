package core

type Reporter interface {
	Render(findings []Finding) ([]byte, error)
	// Extension is the file extension of the rendered report, without a dot.
	Extension() string
}

type ReportStorage interface {
	Store(data []byte) error
	Path() string
}

type Publisher interface {
	Publish(findings []Finding) error
}
