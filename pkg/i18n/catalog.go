// Package i18n checks translation catalogs against the error taxonomy.
//
// A catalog maps wire tags (the "error" field of an error response) to
// user-facing text. Front ends translate error responses by tag, so every
// tag must have an entry:
//
//	catalog, err := i18n.LoadCatalog("translations/en.json")
//	if err != nil {
//	    return err
//	}
//	if missing := i18n.MissingTags(catalog); len(missing) > 0 {
//	    // fail the build
//	}
package i18n

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"

	sserr "github.com/StricklySoft/stricklysoft-community/pkg/errors"
)

// Catalog maps wire tags to translated messages.
type Catalog map[string]string

// LoadCatalog reads a flat JSON object of tag to message.
func LoadCatalog(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, sserr.Unclassified(err)
	}
	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, sserr.Unclassified(fmt.Errorf("i18n: parse %s: %w", path, err))
	}
	if c == nil {
		c = Catalog{}
	}
	return c, nil
}

// MissingTags returns the taxonomy tags that have no non-empty entry in c,
// in declaration order.
func MissingTags(c Catalog) []sserr.Tag {
	var missing []sserr.Tag
	for _, tag := range sserr.Tags() {
		if c[string(tag)] == "" {
			missing = append(missing, tag)
		}
	}
	return missing
}

// UnknownKeys returns catalog keys that are not taxonomy tags, sorted.
// They usually point at a renamed or removed tag.
func UnknownKeys(c Catalog) []string {
	var unknown []string
	for key := range c {
		if _, ok := sserr.ParseTag(key); !ok {
			unknown = append(unknown, key)
		}
	}
	slices.Sort(unknown)
	return unknown
}
