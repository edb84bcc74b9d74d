package geo

import (
	"encoding/json"
	"strconv"

	"gopkg.in/yaml.v3"
)

// EncodeYAML renders o as YAML with the same member order as Encode.
func EncodeYAML(o Object) ([]byte, error) {
	node, err := yamlNode(EncodeValue(o))
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(node)
}

func yamlNode(v Value) (*yaml.Node, error) {
	switch v := v.(type) {
	case nil:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	case bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(v)}, nil
	case float64:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: string(appendNumber(nil, v))}, nil
	case string:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}, nil
	case RawJSON:
		var decoded any
		if len(v) > 0 {
			if err := json.Unmarshal(v, &decoded); err != nil {
				return nil, err
			}
		}
		node := &yaml.Node{}
		if err := node.Encode(decoded); err != nil {
			return nil, err
		}
		return node, nil
	case []Value:
		// Positions are short numeric lists, keep them on one line.
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Style: yaml.FlowStyle}
		for _, item := range v {
			child, err := yamlNode(item)
			if err != nil {
				return nil, err
			}
			if child.Kind != yaml.ScalarNode {
				node.Style = 0
			}
			node.Content = append(node.Content, child)
		}
		return node, nil
	case Members:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, m := range v {
			child, err := yamlNode(m.Value)
			if err != nil {
				return nil, err
			}
			key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: m.Key}
			node.Content = append(node.Content, key, child)
		}
		return node, nil
	}

	node := &yaml.Node{}
	if err := node.Encode(v); err != nil {
		return nil, err
	}
	return node, nil
}
