package grammar

import "testing"

func TestNodeIdentifiersAreStableAndUnique(t *testing.T) {
	a := NewData("same-name", []byte("x"))
	b := NewData("same-name", []byte("x"))
	if a.ID() == b.ID() {
		t.Fatalf("distinct nodes must not share an identifier")
	}
	if a.ID() != a.ID() {
		t.Fatalf("identifier must be stable")
	}
	if a.Kind() != KindData || a.Name() != "same-name" {
		t.Fatalf("constructor state mismatch: kind=%v name=%q", a.Kind(), a.Name())
	}
}

func TestWalkVisitsEveryNode(t *testing.T) {
	leafA := NewData("a", []byte("a"))
	leafB := NewData("b", []byte("b"))
	rep := NewRepeat("rep", leafB, 1, 2)
	alt := NewAlt("alt", leafA, rep)
	root := NewAgg("root", alt)

	var names []string
	Walk(root, func(n Node) { names = append(names, n.Name()) })

	want := []string{"root", "alt", "a", "rep", "b"}
	if len(names) != len(want) {
		t.Fatalf("walk visited %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("walk order %v, want %v", names, want)
		}
	}
}

func TestKindString(t *testing.T) {
	cases := map[Kind]string{
		KindAgg:    "agg",
		KindAlt:    "alt",
		KindRepeat: "repeat",
		KindData:   "data",
	}
	for kind, want := range cases {
		if kind.String() != want {
			t.Fatalf("kind %d = %q, want %q", kind, kind.String(), want)
		}
	}
}
