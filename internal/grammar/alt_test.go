package grammar

import (
	"bytes"
	"errors"
	"testing"

	"github.com/2cute2die/netzob/internal/binding"
	"github.com/2cute2die/netzob/internal/memory"
	"github.com/2cute2die/netzob/internal/token"
)

func TestAltNilToken(t *testing.T) {
	alt := NewAlt("choice", NewData("a", []byte("a")))
	if err := alt.Read(nil); !errors.Is(err, ErrNilToken) {
		t.Fatalf("expected ErrNilToken, got %v", err)
	}
	if err := alt.Write(nil); !errors.Is(err, ErrNilToken) {
		t.Fatalf("expected ErrNilToken, got %v", err)
	}
}

func TestAltIsDefinedAnyChild(t *testing.T) {
	tok := token.NewReading(nil, memory.New())

	alt := NewAlt("choice", &stubNode{id: "a"}, &stubNode{id: "b", defined: true})
	if ok, _ := alt.IsDefined(tok); !ok {
		t.Fatalf("one defined child should define the alternative")
	}

	none := NewAlt("none", &stubNode{id: "a"}, &stubNode{id: "b"})
	if ok, _ := none.IsDefined(tok); ok {
		t.Fatalf("no defined child should leave the alternative undefined")
	}

	empty := NewAlt("empty")
	if ok, _ := empty.IsDefined(tok); ok {
		t.Fatalf("empty alternative must be undefined")
	}
}

func TestAltReadFirstMatchWins(t *testing.T) {
	alt := NewAlt("choice",
		NewData("cat", []byte("cat")),
		NewData("dog", []byte("dog")))

	tok := token.NewReading([]byte("dog!"), memory.New())
	if err := alt.Read(tok); err != nil {
		t.Fatalf("read: %v", err)
	}
	if !tok.Ok() || tok.Index() != 3 {
		t.Fatalf("second branch should match after rewinding the first: ok=%v index=%d",
			tok.Ok(), tok.Index())
	}
}

func TestAltReadRestoresAfterFailedBranch(t *testing.T) {
	alt := NewAlt("choice",
		NewAgg("long", NewData("p", []byte("do")), NewData("q", []byte("ck"))),
		NewData("dog", []byte("dog")))

	// The first branch consumes "do" before failing; the alternative must
	// rewind so the second branch sees the full input.
	tok := token.NewReading([]byte("dog"), memory.New())
	if err := alt.Read(tok); err != nil {
		t.Fatalf("read: %v", err)
	}
	if !tok.Ok() || tok.Index() != 3 {
		t.Fatalf("branch failure was not rolled back: ok=%v index=%d", tok.Ok(), tok.Index())
	}
}

func TestAltReadAllBranchesFail(t *testing.T) {
	alt := NewAlt("choice", NewData("a", []byte("aa")), NewData("b", []byte("bb")))
	reg := binding.NewRegistry()
	alt.BindTo(reg)
	listener := &countingListener{}
	if err := reg.Attach(alt.ID(), listener); err != nil {
		t.Fatalf("attach: %v", err)
	}

	tok := token.NewReading([]byte("zz"), memory.New())
	if err := alt.Read(tok); err != nil {
		t.Fatalf("read: %v", err)
	}
	if tok.Ok() {
		t.Fatalf("no branch matched, token must fail")
	}
	if len(listener.events) != 0 {
		t.Fatalf("failed read must not notify")
	}
}

func TestAltWriteSkipsFailingBranch(t *testing.T) {
	alt := NewAlt("choice",
		&stubNode{id: "broken", failWrite: true},
		&stubNode{id: "good", out: []byte("ok")})

	tok := token.NewWriting(memory.New())
	if err := alt.Write(tok); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !tok.Ok() || !bytes.Equal(tok.Bytes(), []byte("ok")) {
		t.Fatalf("expected fallback branch output, got ok=%v out=%q", tok.Ok(), tok.Bytes())
	}
}

func TestAltEmptyFailsReadAndWrite(t *testing.T) {
	alt := NewAlt("empty")

	rt := token.NewReading([]byte("x"), memory.New())
	if err := alt.Read(rt); err != nil || rt.Ok() {
		t.Fatalf("empty alternative read: err=%v ok=%v", err, rt.Ok())
	}

	wt := token.NewWriting(memory.New())
	if err := alt.Write(wt); err != nil || wt.Ok() {
		t.Fatalf("empty alternative write: err=%v ok=%v", err, wt.Ok())
	}

	if !alt.BuildPattern().IsEmpty() {
		t.Fatalf("empty alternative must derive the neutral pattern")
	}
}

func TestAltPattern(t *testing.T) {
	alt := NewAlt("choice", NewData("cat", []byte("cat")), NewData("dog", []byte("dog")))
	p := alt.BuildPattern()
	for _, branch := range []string{"cat", "dog"} {
		if ok, err := p.Match([]byte(branch)); err != nil || !ok {
			t.Fatalf("alternation pattern should match %q: ok=%v err=%v", branch, ok, err)
		}
	}
	if ok, _ := p.Match([]byte("cow")); ok {
		t.Fatalf("alternation pattern matched a non-branch")
	}
}
