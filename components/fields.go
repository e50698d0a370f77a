package components

// Field describes one labelled input.
type Field struct {
	Name        string
	Label       string
	Type        string
	Value       string
	Placeholder string
	Required    bool
	Error       string
}

func (f Field) inputType() string {
	if f.Type == "" {
		return "text"
	}
	return f.Type
}

// invalid is the aria-invalid value of the field's control.
func (f Field) invalid() string {
	if f.Error != "" {
		return "true"
	}
	return "false"
}

// Option is one choice of a Select.
type Option struct {
	Value string
	Label string
}
