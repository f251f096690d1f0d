package cli

// Options is the root command that groups sub-commands. The struct tags are
// interpreted by github.com/jessevdk/go-flags.
type Options struct {
	Config  string     `short:"f" long:"config" description:"operation table YAML path" default:"hostapi.yaml"`
	List    ListCmd    `command:"list" description:"List the operations of the table"`
	Call    CallCmd    `command:"call" description:"Invoke one operation and print its envelope as JSON"`
	OpenAPI OpenAPICmd `command:"openapi" description:"Print the table as an OpenAPI 3.1 document"`
	Version VersionCmd `command:"version" description:"Print version information"`
}

// ListCmd prints one line per operation.
type ListCmd struct{}

// CallCmd invokes an operation.
type CallCmd struct {
	BaseURL string   `long:"base-url" description:"override the base URL of the config"`
	Headers []string `short:"H" long:"header" description:"extra header as key:value, repeatable"`
	Dedup   bool     `long:"dedup" description:"cancel a pending call to the same endpoint first"`
	Strict  bool     `long:"strict" description:"fail when a path placeholder has no parameter"`
	Debug   bool     `short:"d" long:"debug" description:"log the call lifecycle to stderr"`
	Args    struct {
		Operation string   `positional-arg-name:"operation" required:"yes"`
		Params    []string `positional-arg-name:"key=value"`
	} `positional-args:"yes"`
}

// OpenAPICmd renders the table.
type OpenAPICmd struct {
	Title   string `long:"title" description:"document title" default:"hostapi"`
	Version string `long:"api-version" description:"document version" default:"1.0.0"`
}

// VersionCmd prints build metadata.
type VersionCmd struct{}
