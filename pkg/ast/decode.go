package ast

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DecodeError reports a malformed document together with the path of the
// offending node.
type DecodeError struct {
	Path string
	Msg  string
}

func (e *DecodeError) Error() string {
	if e.Path == "" {
		return "decode: " + e.Msg
	}
	return fmt.Sprintf("decode %s: %s", e.Path, e.Msg)
}

func decodeErrorf(path, format string, args ...any) error {
	return &DecodeError{Path: path, Msg: fmt.Sprintf(format, args...)}
}

// DecodeFile reads a document from disk. Files ending in .yml or .yaml are
// decoded as YAML, everything else as JSON.
func DecodeFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return DecodeYAML(bytes.NewReader(data), path)
	default:
		return DecodeJSON(bytes.NewReader(data), path)
	}
}

// DecodeJSON decodes a File document. source is only used in error messages.
func DecodeJSON(r io.Reader, source string) (*File, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parse %s: empty document", source)
		}
		return nil, fmt.Errorf("parse %s: %w", source, err)
	}
	file, err := DecodeFileNode(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	return file, nil
}

// DecodeYAML decodes a File document written as YAML with the same shape as
// the JSON form.
func DecodeYAML(r io.Reader, source string) (*File, error) {
	dec := yaml.NewDecoder(r)
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parse %s: empty document", source)
		}
		return nil, fmt.Errorf("parse %s: %w", source, err)
	}
	file, err := DecodeFileNode(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	return file, nil
}

// DecodeFileNode converts an already-unmarshalled document into a File.
func DecodeFileNode(node map[string]any) (*File, error) {
	if node == nil {
		return nil, decodeErrorf("", "document is not an object")
	}
	name, _ := node["name"].(string)
	loc, err := decodeLocation(node, "location")
	if err != nil {
		return nil, err
	}
	expr, err := decodeChild(node, "expression", "")
	if err != nil {
		return nil, err
	}
	return &File{Name: name, Expression: expr, Location: loc}, nil
}

// DecodeTerm converts a single unmarshalled term object.
func DecodeTerm(node map[string]any) (Term, error) {
	return decodeTerm(node, "")
}

func decodeTerm(node map[string]any, path string) (Term, error) {
	kind, _ := node["kind"].(string)
	loc, err := decodeLocation(node, join(path, "location"))
	if err != nil {
		return nil, err
	}
	switch NodeKind(kind) {
	case KindError:
		message, _ := node["message"].(string)
		fullText, _ := node["full_text"].(string)
		return NewError(message, fullText, loc), nil
	case KindInt:
		value, err := decodeInt32(node["value"], join(path, "value"))
		if err != nil {
			return nil, err
		}
		return NewInt(value, loc), nil
	case KindStr:
		value, ok := node["value"].(string)
		if !ok {
			return nil, decodeErrorf(join(path, "value"), "expected string, got %T", node["value"])
		}
		return NewStr(value, loc), nil
	case KindBool:
		value, ok := node["value"].(bool)
		if !ok {
			return nil, decodeErrorf(join(path, "value"), "expected bool, got %T", node["value"])
		}
		return NewBool(value, loc), nil
	case KindVar:
		return decodeVar(node, path)
	case KindFunction:
		paramsVal, ok := node["parameters"].([]any)
		if !ok && node["parameters"] != nil {
			return nil, decodeErrorf(join(path, "parameters"), "expected array, got %T", node["parameters"])
		}
		params := make([]*Var, 0, len(paramsVal))
		for idx, raw := range paramsVal {
			paramPath := fmt.Sprintf("%s[%d]", join(path, "parameters"), idx)
			child, ok := raw.(map[string]any)
			if !ok {
				return nil, decodeErrorf(paramPath, "invalid parameter %T", raw)
			}
			param, err := decodeVar(child, paramPath)
			if err != nil {
				return nil, err
			}
			params = append(params, param)
		}
		body, err := decodeChild(node, "value", path)
		if err != nil {
			return nil, err
		}
		return NewFunction(params, body, loc), nil
	case KindCall:
		callee, err := decodeChild(node, "callee", path)
		if err != nil {
			return nil, err
		}
		argsVal, ok := node["arguments"].([]any)
		if !ok && node["arguments"] != nil {
			return nil, decodeErrorf(join(path, "arguments"), "expected array, got %T", node["arguments"])
		}
		args := make([]Term, 0, len(argsVal))
		for idx, raw := range argsVal {
			argPath := fmt.Sprintf("%s[%d]", join(path, "arguments"), idx)
			child, ok := raw.(map[string]any)
			if !ok {
				return nil, decodeErrorf(argPath, "invalid argument %T", raw)
			}
			arg, err := decodeTerm(child, argPath)
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
		}
		return NewCall(callee, args, loc), nil
	case KindBinary:
		op, _ := node["op"].(string)
		if !BinaryOp(op).Valid() {
			return nil, decodeErrorf(join(path, "op"), "unknown binary operator %q", op)
		}
		lhs, err := decodeChild(node, "lhs", path)
		if err != nil {
			return nil, err
		}
		rhs, err := decodeChild(node, "rhs", path)
		if err != nil {
			return nil, err
		}
		return NewBinary(lhs, BinaryOp(op), rhs, loc), nil
	case KindLet:
		nameNode, ok := node["name"].(map[string]any)
		if !ok {
			return nil, decodeErrorf(join(path, "name"), "let binding missing name")
		}
		name, err := decodeVar(nameNode, join(path, "name"))
		if err != nil {
			return nil, err
		}
		value, err := decodeChild(node, "value", path)
		if err != nil {
			return nil, err
		}
		next, err := decodeChild(node, "next", path)
		if err != nil {
			return nil, err
		}
		return NewLet(name, value, next, loc), nil
	case KindIf:
		condition, err := decodeChild(node, "condition", path)
		if err != nil {
			return nil, err
		}
		then, err := decodeChild(node, "then", path)
		if err != nil {
			return nil, err
		}
		otherwise, err := decodeChild(node, "otherwise", path)
		if err != nil {
			return nil, err
		}
		return NewIf(condition, then, otherwise, loc), nil
	case KindPrint:
		value, err := decodeChild(node, "value", path)
		if err != nil {
			return nil, err
		}
		return NewPrint(value, loc), nil
	case KindFirst:
		value, err := decodeChild(node, "value", path)
		if err != nil {
			return nil, err
		}
		return NewFirst(value, loc), nil
	case KindSecond:
		value, err := decodeChild(node, "value", path)
		if err != nil {
			return nil, err
		}
		return NewSecond(value, loc), nil
	case KindTuple:
		first, err := decodeChild(node, "first", path)
		if err != nil {
			return nil, err
		}
		second, err := decodeChild(node, "second", path)
		if err != nil {
			return nil, err
		}
		return NewTuple(first, second, loc), nil
	case "":
		return nil, decodeErrorf(path, "term missing kind")
	default:
		return nil, decodeErrorf(path, "unknown term kind %q", kind)
	}
}

func decodeChild(node map[string]any, field, path string) (Term, error) {
	childPath := join(path, field)
	raw, ok := node[field]
	if !ok || raw == nil {
		return nil, decodeErrorf(childPath, "missing term")
	}
	child, ok := raw.(map[string]any)
	if !ok {
		return nil, decodeErrorf(childPath, "expected term object, got %T", raw)
	}
	return decodeTerm(child, childPath)
}

func decodeVar(node map[string]any, path string) (*Var, error) {
	if kind, ok := node["kind"].(string); ok && kind != string(KindVar) {
		return nil, decodeErrorf(path, "expected Var, got %q", kind)
	}
	text, ok := node["text"].(string)
	if !ok {
		return nil, decodeErrorf(join(path, "text"), "expected string, got %T", node["text"])
	}
	loc, err := decodeLocation(node, join(path, "location"))
	if err != nil {
		return nil, err
	}
	return NewVar(text, loc), nil
}

func decodeLocation(node map[string]any, path string) (Location, error) {
	raw, ok := node["location"]
	if !ok || raw == nil {
		return Location{}, nil
	}
	locNode, ok := raw.(map[string]any)
	if !ok {
		return Location{}, decodeErrorf(path, "expected location object, got %T", raw)
	}
	start, err := decodeUint(locNode["start"], join(path, "start"))
	if err != nil {
		return Location{}, err
	}
	end, err := decodeUint(locNode["end"], join(path, "end"))
	if err != nil {
		return Location{}, err
	}
	filename, _ := locNode["filename"].(string)
	return NewLocation(start, end, filename), nil
}

func decodeInt32(raw any, path string) (int32, error) {
	value, err := decodeInteger(raw, path)
	if err != nil {
		return 0, err
	}
	if value < math.MinInt32 || value > math.MaxInt32 {
		return 0, decodeErrorf(path, "integer %d does not fit in 32 bits", value)
	}
	return int32(value), nil
}

func decodeUint(raw any, path string) (uint, error) {
	if raw == nil {
		return 0, nil
	}
	value, err := decodeInteger(raw, path)
	if err != nil {
		return 0, err
	}
	if value < 0 {
		return 0, decodeErrorf(path, "offset %d is negative", value)
	}
	return uint(value), nil
}

func decodeInteger(raw any, path string) (int64, error) {
	switch v := raw.(type) {
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, decodeErrorf(path, "invalid integer %q", v.String())
		}
		return n, nil
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	case uint64:
		if v > math.MaxInt64 {
			return 0, decodeErrorf(path, "integer %d out of range", v)
		}
		return int64(v), nil
	case float64:
		if v != math.Trunc(v) || v < math.MinInt64 || v > math.MaxInt64 {
			return 0, decodeErrorf(path, "invalid integer %v", v)
		}
		return int64(v), nil
	default:
		return 0, decodeErrorf(path, "expected integer, got %T", raw)
	}
}

func join(path, field string) string {
	if path == "" {
		return field
	}
	return path + "." + field
}
