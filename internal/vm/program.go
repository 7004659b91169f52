package vm

import "github.com/litlang/litvm/internal/bytecode"

// index scans every line of the program exactly once, recording LABEL
// positions and CLASS declaration-start positions. Classes themselves are
// not parsed during this pass — only their start line, so the class
// loader can later seek there. Grounded on
// original_source/vm/lvm.py's collect_labels_and_classes.
func index(lines []string) (labels map[string]int, classPositions map[string]int) {
	labels = make(map[string]int)
	classPositions = make(map[string]int)

	for i, raw := range lines {
		line, ok := bytecode.ParseLine(raw)
		if !ok {
			continue
		}
		switch line.Op {
		case "LABEL":
			labels[line.Arg(1)] = i
		case "CLASS":
			classPositions[line.Arg(1)] = i
		}
	}
	return labels, classPositions
}
