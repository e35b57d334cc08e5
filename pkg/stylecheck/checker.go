package stylecheck

// Checker runs the classify, resolve, extract and usage steps for a style
// file. It keeps no state between calls and is safe for concurrent use.
type Checker struct {
	fs       FileSystem
	resolver Resolver
	observer Observer
}

// Option configures a Checker.
type Option func(*Checker)

// WithObserver attaches an observer that receives progress notifications.
func WithObserver(observer Observer) Option {
	return func(c *Checker) {
		c.observer = observer
	}
}

// WithSeparator sets the path separator used to split style paths.
func WithSeparator(sep string) Option {
	return func(c *Checker) {
		c.resolver.Separator = sep
	}
}

// NewChecker creates a Checker reading through fsys. A nil fsys uses the
// host file system.
func NewChecker(fsys FileSystem, opts ...Option) *Checker {
	if fsys == nil {
		fsys = OSFileSystem{}
	}

	c := &Checker{
		fs:       fsys,
		resolver: Resolver{FS: fsys, Separator: DefaultSeparator},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Check checks the style file at path using text as its current content,
// for example an unsaved editor buffer. A nil text means no content is
// available and yields SkipNoText once a sibling has been found.
func (c *Checker) Check(path string, text *string) (*Result, error) {
	return c.run(path, func() (*string, error) {
		return text, nil
	})
}

// CheckFile checks the style file at path, reading its content from the file
// system. Non-style files and files without a sibling are never read.
func (c *Checker) CheckFile(path string) (*Result, error) {
	return c.run(path, func() (*string, error) {
		text, err := readText(c.fs, path)
		if err != nil {
			return nil, err
		}

		return &text, nil
	})
}

// CheckUsage reads the sibling at siblingPath and returns the variables it
// never references. Read failures wrap ErrFileRead.
func (c *Checker) CheckUsage(variables []string, siblingPath string) ([]string, error) {
	unused, _, err := c.checkUsage(variables, siblingPath)

	return unused, err
}

func (c *Checker) checkUsage(variables []string, siblingPath string) ([]string, int, error) {
	text, err := readText(c.fs, siblingPath)
	if err != nil {
		return nil, 0, err
	}

	unused := FindUnused(variables, text)
	for _, variable := range unused {
		c.notify(unusedVariableEvent(variable, siblingPath))
	}

	return unused, len(text), nil
}

func (c *Checker) run(path string, load func() (*string, error)) (*Result, error) {
	result := &Result{StylePath: path}

	isStyle := IsStyleFile(path)
	c.notify(classifiedEvent(path, isStyle))

	if !isStyle {
		result.Skip = SkipNotStyleFile

		return result, nil
	}

	sibling, err := c.resolver.Resolve(path)
	if err != nil {
		return nil, err
	}

	result.Sibling = sibling

	if !sibling.Exists {
		result.Skip = SkipNoSibling

		return result, nil
	}

	text, err := load()
	if err != nil {
		return nil, err
	}

	variables, ok := ExtractDocument(text)
	if !ok {
		result.Skip = SkipNoText

		return result, nil
	}

	result.Variables = variables

	unused, size, err := c.checkUsage(variables, sibling.Path)
	if err != nil {
		return nil, err
	}

	result.Unused = unused
	result.SiblingSize = size

	c.notify(resultEvent(path, unused))

	return result, nil
}

func (c *Checker) notify(event Event) {
	if c.observer != nil {
		c.observer(event)
	}
}

// CheckUnusedStyles checks the style file at path on the host file system.
// It returns applicable=false when there is nothing to report: path is not a
// style file or has no sibling. I/O failures are returned as errors.
func CheckUnusedStyles(path string) (unused []string, applicable bool, err error) {
	result, err := NewChecker(nil).CheckFile(path)
	if err != nil {
		return nil, false, err
	}

	if !result.Applicable() {
		return nil, false, nil
	}

	return result.Unused, true, nil
}
