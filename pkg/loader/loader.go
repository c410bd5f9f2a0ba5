// Package loader reads locale resource trees from an fs.FS, typically an
// embed.FS shipped with the application. Loading happens before the trees
// are handed to a composer; the runtime itself never touches the disk.
//
// Two layouts are recognized:
//
//	en.json              whole tree for "en"
//	en/common.yaml       tree for "en" nested under the "common" key
package loader

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidFile marks files that cannot be parsed as a resource tree.
var ErrInvalidFile = errors.New("loader: invalid resource file")

// JSON loads every .json file in fsys into per-locale trees.
func JSON(fsys fs.FS) (map[string]map[string]any, error) {
	return load(fsys, isJSON, json.Unmarshal)
}

// YAML loads every .yaml/.yml file in fsys into per-locale trees.
func YAML(fsys fs.FS) (map[string]map[string]any, error) {
	return load(fsys, isYAML, yaml.Unmarshal)
}

func isJSON(ext string) bool { return ext == ".json" }

func isYAML(ext string) bool { return ext == ".yaml" || ext == ".yml" }

func load(fsys fs.FS, matches func(string) bool, unmarshal func([]byte, any) error) (map[string]map[string]any, error) {
	out := make(map[string]map[string]any)

	err := fs.WalkDir(fsys, ".", func(filePath string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !matches(strings.ToLower(path.Ext(filePath))) {
			return nil
		}

		locale, namespace, err := splitPath(filePath)
		if err != nil {
			return err
		}

		data, err := fs.ReadFile(fsys, filePath)
		if err != nil {
			return fmt.Errorf("reading %q: %w", filePath, err)
		}

		var tree map[string]any
		if err := unmarshal(data, &tree); err != nil {
			return fmt.Errorf("%w: parsing %q: %s", ErrInvalidFile, filePath, err)
		}

		if out[locale] == nil {
			out[locale] = make(map[string]any)
		}
		if namespace == "" {
			for key, value := range tree {
				out[locale][key] = value
			}
			return nil
		}
		out[locale][namespace] = tree
		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// splitPath maps "en.json" to ("en", "") and "en/common.json" to
// ("en", "common"). Deeper nesting joins intermediate directories into the
// namespace with dots.
func splitPath(filePath string) (locale, namespace string, err error) {
	name := strings.TrimSuffix(path.Base(filePath), path.Ext(filePath))
	dir := path.Dir(filePath)

	if dir == "." || dir == "" {
		return name, "", nil
	}

	parts := strings.Split(dir, "/")
	locale = parts[0]
	if locale == "" {
		return "", "", fmt.Errorf("%w: file %q has no locale directory", ErrInvalidFile, filePath)
	}

	namespace = strings.Join(append(parts[1:], name), ".")
	return locale, namespace, nil
}
