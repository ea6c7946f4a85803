package model

import "fmt"

// Descriptor is a flat key-value encoding of a node or object, the form
// entities take at the serialization boundary (yaml scenarios, callers
// building systems from data). The "nodeType"/"objectType" field selects
// the variant; unknown extra keys are ignored.
type Descriptor map[string]any

// Node type discriminators.
const (
	NodeTypePoint     = "NodePoint"
	NodeTypeRigidBody = "NodeRigidBody"
)

// Object type discriminators.
const (
	ObjectTypeMassPoint    = "ObjectMassPoint"
	ObjectTypeRigidBody    = "ObjectRigidBody"
	ObjectTypeSpringDamper = "ObjectConnectorSpringDamper"
)

// NodeFromDescriptor constructs the node variant selected by "nodeType".
func NodeFromDescriptor(d Descriptor) (Node, error) {
	typ, _ := d["nodeType"].(string)
	switch typ {
	case NodeTypePoint:
		ref, err := vec3(d, "referenceCoordinates", true)
		if err != nil {
			return nil, err
		}
		return NewPointNode(ref), nil
	case NodeTypeRigidBody:
		ref, err := vec3(d, "referenceCoordinates", true)
		if err != nil {
			return nil, err
		}
		rot, err := vec4(d, "referenceRotations", [4]float64{1, 0, 0, 0})
		if err != nil {
			return nil, err
		}
		vel, err := vec3(d, "initialVelocities", false)
		if err != nil {
			return nil, err
		}
		omega, err := vec3(d, "initialAngularVelocities", false)
		if err != nil {
			return nil, err
		}
		return NewRigidBodyNode(ref, rot, vel, omega), nil
	default:
		return nil, fmt.Errorf("%w: node type %q", ErrUnknownType, typ)
	}
}

// ObjectFromDescriptor constructs the object variant selected by
// "objectType".
func ObjectFromDescriptor(d Descriptor) (Object, error) {
	typ, _ := d["objectType"].(string)
	switch typ {
	case ObjectTypeMassPoint:
		mass, err := scalarRequired(d, "physicsMass")
		if err != nil {
			return nil, err
		}
		node, err := intRequired(d, "nodeNumber")
		if err != nil {
			return nil, err
		}
		obj := NewMassPoint(mass, node)
		obj.Name, _ = d["name"].(string)
		applyVisual(obj, d)
		return obj, nil
	case ObjectTypeRigidBody:
		mass, err := scalarRequired(d, "physicsMass")
		if err != nil {
			return nil, err
		}
		inertia, err := vec6Required(d, "physicsInertia")
		if err != nil {
			return nil, err
		}
		node, err := intRequired(d, "nodeNumber")
		if err != nil {
			return nil, err
		}
		obj := NewRigidBody(mass, inertia, node)
		obj.Name, _ = d["name"].(string)
		applyVisual(obj, d)
		return obj, nil
	case ObjectTypeSpringDamper:
		stiffness, err := scalarRequired(d, "stiffness")
		if err != nil {
			return nil, err
		}
		damping, err := scalarRequired(d, "damping")
		if err != nil {
			return nil, err
		}
		nodes, err := int2Required(d, "nodeNumbers")
		if err != nil {
			return nil, err
		}
		obj := NewSpringDamper(stiffness, damping, scalarOr(d, "referenceLength", 0), nodes)
		obj.Name, _ = d["name"].(string)
		applyVisual(obj, d)
		return obj, nil
	default:
		return nil, fmt.Errorf("%w: object type %q", ErrUnknownType, typ)
	}
}

type visualSetter interface{ SetVisual(Visual) }

func applyVisual(obj visualSetter, d Descriptor) {
	raw, ok := d["visualization"].(map[string]any)
	if !ok {
		return
	}
	v := Visual{Radius: 0.1, Color: [4]float64{0.2, 0.6, 1.0, 1.0}}
	if r, ok := asFloat(raw["radius"]); ok {
		v.Radius = r
	}
	if c, ok := floatSlice(raw["color"]); ok && len(c) == 4 {
		copy(v.Color[:], c)
	}
	obj.SetVisual(v)
}

func asFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	}
	return 0, false
}

func floatSlice(v any) ([]float64, bool) {
	switch xs := v.(type) {
	case []float64:
		return xs, true
	case []any:
		out := make([]float64, len(xs))
		for i, x := range xs {
			f, ok := asFloat(x)
			if !ok {
				return nil, false
			}
			out[i] = f
		}
		return out, true
	}
	return nil, false
}

func scalarRequired(d Descriptor, key string) (float64, error) {
	f, ok := asFloat(d[key])
	if !ok {
		return 0, fmt.Errorf("%w: missing or non-numeric %q", ErrBadDescriptor, key)
	}
	return f, nil
}

func scalarOr(d Descriptor, key string, def float64) float64 {
	if f, ok := asFloat(d[key]); ok {
		return f
	}
	return def
}

func intRequired(d Descriptor, key string) (int, error) {
	f, ok := asFloat(d[key])
	if !ok {
		return 0, fmt.Errorf("%w: missing or non-integer %q", ErrBadDescriptor, key)
	}
	return int(f), nil
}

func int2Required(d Descriptor, key string) ([2]int, error) {
	xs, ok := floatSlice(d[key])
	if !ok || len(xs) != 2 {
		return [2]int{}, fmt.Errorf("%w: %q must hold two node numbers", ErrBadDescriptor, key)
	}
	return [2]int{int(xs[0]), int(xs[1])}, nil
}

// vec3 reads a 3-vector; when required is false a missing key yields zero.
func vec3(d Descriptor, key string, required bool) ([3]float64, error) {
	if _, present := d[key]; !present && !required {
		return [3]float64{}, nil
	}
	xs, ok := floatSlice(d[key])
	if !ok || len(xs) != 3 {
		return [3]float64{}, fmt.Errorf("%w: %q must be a 3-vector", ErrBadDescriptor, key)
	}
	var out [3]float64
	copy(out[:], xs)
	return out, nil
}

// vec4 reads a 4-vector, falling back to def when the key is absent.
func vec4(d Descriptor, key string, def [4]float64) ([4]float64, error) {
	if _, present := d[key]; !present {
		return def, nil
	}
	xs, ok := floatSlice(d[key])
	if !ok || len(xs) != 4 {
		return [4]float64{}, fmt.Errorf("%w: %q must be a 4-vector", ErrBadDescriptor, key)
	}
	var out [4]float64
	copy(out[:], xs)
	return out, nil
}

func vec6Required(d Descriptor, key string) ([6]float64, error) {
	xs, ok := floatSlice(d[key])
	if !ok || len(xs) != 6 {
		return [6]float64{}, fmt.Errorf("%w: %q must hold [Jxx Jyy Jzz Jyz Jxz Jxy]", ErrBadDescriptor, key)
	}
	var out [6]float64
	copy(out[:], xs)
	return out, nil
}
