package metrics

type Config struct {
	// Textfile is written on shutdown in the node-exporter textfile format.
	// Empty disables the export.
	Textfile string
}
