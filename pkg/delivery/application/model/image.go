package model

import "fmt"

// Revision is an opaque source control revision identifier (a commit hash).
type Revision string

const shortRevisionLength = 12

func (r Revision) Short() string {
	if len(r) <= shortRevisionLength {
		return string(r)
	}
	return string(r[:shortRevisionLength])
}

type TagPolicy string

const (
	TagByRevision TagPolicy = "revision"
	TagLatest     TagPolicy = "latest"
)

func ParseTagPolicy(v string) (TagPolicy, error) {
	switch TagPolicy(v) {
	case TagByRevision, TagLatest:
		return TagPolicy(v), nil
	}
	return "", fmt.Errorf("unknown tag policy %q", v)
}

// Tag derives the image tag for a revision. The result is deterministic:
// the same revision always yields the same tag string.
func (p TagPolicy) Tag(revision Revision) string {
	if p == TagLatest {
		return string(TagLatest)
	}
	return revision.Short()
}

// ImageRef identifies a container image as {namespace}/{name}:{tag},
// optionally prefixed with a registry host.
type ImageRef struct {
	Registry  string
	Namespace string
	Name      string
	Tag       string
}

func (r ImageRef) String() string {
	ref := fmt.Sprintf("%v/%v:%v", r.Namespace, r.Name, r.Tag)
	if r.Registry != "" {
		ref = r.Registry + "/" + ref
	}
	return ref
}
