package utils

import (
	"github.com/google/go-github/v31/github"
	"k8s.io/apimachinery/pkg/util/sets"
)

// HasLabel checks if label is in the label set "issueLabels".
func HasLabel(label string, issueLabels []*github.Label) bool {
	for _, l := range issueLabels {
		if l.GetName() == label {
			return true
		}
	}
	return false
}

// LabelsSet creates a label set based on the github labels to make the
// guard checks easier.
func LabelsSet(labels []*github.Label) sets.String {
	prLabels := sets.String{}
	for _, label := range labels {
		prLabels.Insert(label.GetName())
	}
	return prLabels
}
