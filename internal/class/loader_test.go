package class

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litlang/litvm/internal/bytecode"
)

func indexClasses(lines []string) map[string]int {
	positions := make(map[string]int)
	for i, raw := range lines {
		line, ok := bytecode.ParseLine(raw)
		if !ok {
			continue
		}
		if line.Op == "CLASS" {
			positions[line.Arg(1)] = i
		}
	}
	return positions
}

func newLoader(program string) *Loader {
	lines := strings.Split(strings.TrimPrefix(program, "\n"), "\n")
	return NewLoader(lines, indexClasses(lines))
}

func TestLoadMergesParentFieldsWithParentWinningCollisions(t *testing.T) {
	loader := newLoader(`
CLASS Base
FIELD int id
FIELD str tag
END_CLASS

CLASS Derived
EXTENDS Base
FIELD int tag
FIELD bool active
END_CLASS
`)
	derived, err := loader.Load("Derived")
	require.NoError(t, err)

	assert.Equal(t, "int", derived.Fields["id"])
	assert.Equal(t, "bool", derived.Fields["active"])
	// Derived declared tag as int, but the source's END_CLASS merge
	// copies the parent's entries in unconditionally last, so on a name
	// collision the parent's declaration wins.
	assert.Equal(t, "str", derived.Fields["tag"])
}

func TestLoadMergesInterfaceMethodsOnly(t *testing.T) {
	loader := newLoader(`
CLASS Named
FIELD str label
METHOD name name_label
END_CLASS

CLASS Person
IMPLEMENTS Named
FIELD str value
END_CLASS
`)
	person, err := loader.Load("Person")
	require.NoError(t, err)

	assert.Equal(t, "name_label", person.Methods["name"])
	_, hasLabel := person.Fields["label"]
	assert.False(t, hasLabel, "interface merge must not copy fields, only methods")
}

func TestLoadDetectsCyclicInheritance(t *testing.T) {
	loader := newLoader(`
CLASS A
EXTENDS B
END_CLASS

CLASS B
EXTENDS A
END_CLASS
`)
	_, err := loader.Load("A")
	require.Error(t, err)
	var cyc *ErrCyclicInheritance
	assert.ErrorAs(t, err, &cyc)
}

func TestLoadCachesOnSecondCall(t *testing.T) {
	loader := newLoader(`
CLASS Solo
FIELD int n
END_CLASS
`)
	first, err := loader.Load("Solo")
	require.NoError(t, err)
	second, err := loader.Load("Solo")
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestLoadUnknownClassReturnsNotFound(t *testing.T) {
	loader := newLoader("")
	_, err := loader.Load("Ghost")
	require.Error(t, err)
	var nf *ErrNotFound
	assert.ErrorAs(t, err, &nf)
}

func TestImplementsTransitivelyWalksSuperclassChain(t *testing.T) {
	loader := newLoader(`
CLASS Animal
END_CLASS

CLASS Named
END_CLASS

CLASS Dog
EXTENDS Animal
IMPLEMENTS Named
END_CLASS
`)
	dog, err := loader.Load("Dog")
	require.NoError(t, err)

	assert.True(t, dog.ImplementsTransitively("Dog", loader.Classes))
	assert.True(t, dog.ImplementsTransitively("Animal", loader.Classes))
	assert.True(t, dog.ImplementsTransitively("Named", loader.Classes))
	assert.False(t, dog.ImplementsTransitively("Cat", loader.Classes))
}
