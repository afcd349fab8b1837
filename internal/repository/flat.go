package repository

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// The flat format is one "key=value" line per scalar. Keys are dotted paths
// such as cards.0.maskedCardNumber or
// transactions.3.authorizationResult.approvalResult, and each value is a
// JSON literal. Lines starting with '#' are ignored.

const flatHeader = "# card processor store\n"

// flatten writes every scalar in v under prefix.
func flatten(prefix string, v any, out map[string]string) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", prefix, err)
	}
	return flattenRaw(prefix, raw, out)
}

func flattenRaw(prefix string, raw json.RawMessage, out map[string]string) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '{' {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(raw, &obj); err != nil {
			return fmt.Errorf("failed to decode %s: %w", prefix, err)
		}
		for k, child := range obj {
			if err := flattenRaw(prefix+"."+k, child, out); err != nil {
				return err
			}
		}
		return nil
	}
	if string(raw) == "null" {
		return nil
	}
	out[prefix] = string(raw)
	return nil
}

// writeFlat writes entries sorted by key.
func writeFlat(w io.Writer, entries map[string]string) error {
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(flatHeader); err != nil {
		return err
	}
	for _, k := range keys {
		if _, err := fmt.Fprintf(bw, "%s=%s\n", k, entries[k]); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// node is a partially rebuilt JSON object. Values are node or json.RawMessage.
type node map[string]any

func (n node) set(path []string, value json.RawMessage) error {
	if len(path) == 1 {
		if _, exists := n[path[0]]; exists {
			return fmt.Errorf("duplicate key %q", path[0])
		}
		n[path[0]] = value
		return nil
	}
	child, ok := n[path[0]]
	if !ok {
		child = node{}
		n[path[0]] = child
	}
	childNode, ok := child.(node)
	if !ok {
		return fmt.Errorf("key %q is both a value and a group", path[0])
	}
	return childNode.set(path[1:], value)
}

// readFlat parses a flat file into collection name -> ordinal -> object.
func readFlat(r io.Reader) (map[string]map[int]node, error) {
	groups := make(map[string]map[int]node)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("line %d: missing '='", lineNo)
		}
		path := strings.Split(key, ".")
		if len(path) < 3 {
			return nil, fmt.Errorf("line %d: key %q is too short", lineNo, key)
		}
		ordinal, err := strconv.Atoi(path[1])
		if err != nil || ordinal < 0 {
			return nil, fmt.Errorf("line %d: invalid ordinal in key %q", lineNo, key)
		}
		if !json.Valid([]byte(value)) {
			return nil, fmt.Errorf("line %d: invalid value for key %q", lineNo, key)
		}

		collection, ok := groups[path[0]]
		if !ok {
			collection = make(map[int]node)
			groups[path[0]] = collection
		}
		obj, ok := collection[ordinal]
		if !ok {
			obj = node{}
			collection[ordinal] = obj
		}
		if err := obj.set(path[2:], json.RawMessage(value)); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return groups, nil
}

// decodeNode rebuilds v from a parsed object.
func decodeNode(n node, v any) error {
	raw, err := json.Marshal(n)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}

// ordinals returns the ordinals of a collection in ascending order.
func ordinals(collection map[int]node) []int {
	keys := make([]int, 0, len(collection))
	for k := range collection {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
