package record

// Directive is a record that emits no bytes: a comment, END, ORG or EQU line.
type Directive struct {
	line

	class Class
}

// NewDirective creates a directive record.
func NewDirective(src Source, class Class) *Directive {
	return &Directive{
		line:  line{src: src},
		class: class,
	}
}

// Class returns the class of the directive line.
func (d *Directive) Class() Class { return d.class }
