package field

import (
	"fmt"

	"github.com/cib-project/cib/internal/matcher"
)

// Spec declares a message's field set: the ordered list of fields a message
// of this shape carries, and how many storage words it needs.
type Spec struct {
	fields   []Field
	byName   map[string]Field
	numWords int
}

// NewSpec builds a Spec from its fields, computing the storage word count
// from the highest word index any slice touches.
func NewSpec(fields ...Field) *Spec {
	s := &Spec{
		fields: append([]Field(nil), fields...),
		byName: make(map[string]Field, len(fields)),
	}
	for _, f := range fields {
		if _, dup := s.byName[f.Name]; dup {
			panic(fmt.Sprintf("field %q declared twice in message spec", f.Name))
		}
		s.byName[f.Name] = f
		for _, sl := range f.Slices {
			if sl.WordIndex+1 > s.numWords {
				s.numWords = sl.WordIndex + 1
			}
		}
	}
	return s
}

// Fields returns the declared fields in declaration order.
func (s *Spec) Fields() []Field { return s.fields }

// ByName looks up a declared field, reporting ok=false for a name not
// belonging to this spec's field set (spec.md §7 MalformedMatcher).
func (s *Spec) ByName(name string) (Field, bool) {
	f, ok := s.byName[name]
	return f, ok
}

// NumWords is the number of 32-bit storage words a message of this shape
// occupies.
func (s *Spec) NumWords() int { return s.numWords }

// NewOwning allocates a zeroed, owned message buffer for this spec.
func (s *Spec) NewOwning() *Owning {
	return &Owning{base{spec: s, words: make([]uint32, s.numWords)}}
}

// NewView wraps an existing word slice without copying it. The caller must
// supply at least NumWords() words.
func (s *Spec) NewView(words []uint32) *View {
	if len(words) < s.numWords {
		panic(fmt.Sprintf("message view: need %d words, got %d", s.numWords, len(words)))
	}
	return &View{base{spec: s, words: words}}
}

// Message is satisfied by both Owning and View: get/set fields by name, and
// present the matcher.Extractor interface so matchers can be evaluated
// directly against a message.
type Message interface {
	matcher.Extractor
	Get(name string) (uint64, bool)
	Set(name string, v uint64) bool
	Words() []uint32
	Spec() *Spec
}

type base struct {
	spec  *Spec
	words []uint32
}

func (b *base) Get(name string) (uint64, bool) {
	f, ok := b.spec.ByName(name)
	if !ok {
		return 0, false
	}
	return f.Extract(b.words), true
}

func (b *base) Set(name string, v uint64) bool {
	f, ok := b.spec.ByName(name)
	if !ok {
		return false
	}
	f.Insert(b.words, v)
	return true
}

func (b *base) FieldValue(name string) (matcher.Value, bool) {
	v, ok := b.Get(name)
	if !ok {
		return 0, false
	}
	return matcher.Value(v), true
}

func (b *base) Words() []uint32 { return b.words }
func (b *base) Spec() *Spec     { return b.spec }

// Owning is a message that owns its storage array.
type Owning struct{ base }

// View borrows a caller-supplied word range; it does not copy storage.
type View struct{ base }

var (
	_ Message = (*Owning)(nil)
	_ Message = (*View)(nil)
)
