package grammar

import (
	"bytes"
	"errors"
	"testing"

	"github.com/2cute2die/netzob/internal/memory"
	"github.com/2cute2die/netzob/internal/token"
)

func TestDataNilToken(t *testing.T) {
	d := NewData("leaf", []byte("ab"))
	if _, err := d.IsDefined(nil); !errors.Is(err, ErrNilToken) {
		t.Fatalf("expected ErrNilToken, got %v", err)
	}
	if err := d.Read(nil); !errors.Is(err, ErrNilToken) {
		t.Fatalf("expected ErrNilToken, got %v", err)
	}
	if err := d.Write(nil); !errors.Is(err, ErrNilToken) {
		t.Fatalf("expected ErrNilToken, got %v", err)
	}
}

func TestDataFixedReadWrite(t *testing.T) {
	d := NewData("leaf", []byte("ping"))

	if ok, _ := d.IsDefined(token.NewReading(nil, memory.New())); !ok {
		t.Fatalf("fixed leaf must be defined")
	}

	tok := token.NewReading([]byte("ping..."), memory.New())
	if err := d.Read(tok); err != nil {
		t.Fatalf("read: %v", err)
	}
	if !tok.Ok() || tok.Index() != 4 || !bytes.Equal(tok.Value(), []byte("ping")) {
		t.Fatalf("fixed read mismatch: ok=%v index=%d value=%q",
			tok.Ok(), tok.Index(), tok.Value())
	}

	bad := token.NewReading([]byte("pong"), memory.New())
	if err := d.Read(bad); err != nil || bad.Ok() {
		t.Fatalf("wrong value must fail the token")
	}

	wt := token.NewWriting(memory.New())
	if err := d.Write(wt); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !wt.Ok() || !bytes.Equal(wt.Bytes(), []byte("ping")) {
		t.Fatalf("fixed write mismatch: %q", wt.Bytes())
	}
}

func TestDataVariableReadBounds(t *testing.T) {
	d := NewSizedData("leaf", 2, 4)

	tok := token.NewReading([]byte("abcdef"), memory.New())
	if err := d.Read(tok); err != nil {
		t.Fatalf("read: %v", err)
	}
	if !tok.Ok() || tok.Index() != 4 {
		t.Fatalf("variable read should consume up to max: index=%d", tok.Index())
	}

	short := token.NewReading([]byte("a"), memory.New())
	if err := d.Read(short); err != nil || short.Ok() {
		t.Fatalf("input below min must fail")
	}
}

func TestDataLearnMemorizesAndReuses(t *testing.T) {
	d := NewSizedData("leaf", 2, 2)
	d.SetLearn(true)
	mem := memory.New()

	if ok, _ := d.IsDefined(token.NewReading(nil, mem)); ok {
		t.Fatalf("unbound variable leaf must be undefined")
	}

	rt := token.NewReading([]byte("hi"), mem)
	if err := d.Read(rt); err != nil || !rt.Ok() {
		t.Fatalf("learning read failed: err=%v ok=%v", err, rt.Ok())
	}

	if ok, _ := d.IsDefined(token.NewReading(nil, mem)); !ok {
		t.Fatalf("memorized leaf must be defined")
	}

	// A later write over the same memory replays the learned value.
	wt := token.NewWriting(mem)
	if err := d.Write(wt); err != nil || !wt.Ok() {
		t.Fatalf("write: err=%v ok=%v", err, wt.Ok())
	}
	if !bytes.Equal(wt.Bytes(), []byte("hi")) {
		t.Fatalf("write should replay the memorized value, got %q", wt.Bytes())
	}

	// And a later read requires it.
	again := token.NewReading([]byte("hi"), mem)
	if err := d.Read(again); err != nil || !again.Ok() {
		t.Fatalf("re-read of memorized value failed")
	}
	other := token.NewReading([]byte("no"), mem)
	if err := d.Read(other); err != nil || other.Ok() {
		t.Fatalf("memorized leaf must reject a different value")
	}
}

func TestDataVariableWriteGeneratesWithinBounds(t *testing.T) {
	d := NewSizedData("leaf", 3, 6)

	for seed := uint64(0); seed < 8; seed++ {
		tok := token.NewWriting(memory.New())
		tok.Reseed(seed)
		if err := d.Write(tok); err != nil || !tok.Ok() {
			t.Fatalf("write: err=%v ok=%v", err, tok.Ok())
		}
		if n := len(tok.Bytes()); n < 3 || n > 6 {
			t.Fatalf("generated length %d out of bounds", n)
		}
	}
}

func TestDataValuelessWriteFails(t *testing.T) {
	d := NewSizedData("leaf", 0, 0)

	tok := token.NewWriting(memory.New())
	if err := d.Write(tok); err != nil || tok.Ok() {
		t.Fatalf("leaf with no value and no bounds must fail to write")
	}
}

func TestDataPattern(t *testing.T) {
	fixed := NewData("f", []byte("hi"))
	if fixed.BuildPattern().Expr() == "" {
		t.Fatalf("fixed leaf pattern should not be empty")
	}

	variable := NewSizedData("v", 5, 10)
	p := variable.BuildPattern()
	if p.Expr() != "(.{10,20})" {
		t.Fatalf("variable leaf pattern unexpected: %q", p.Expr())
	}
	if ok, err := p.Match([]byte("12345")); err != nil || !ok {
		t.Fatalf("variable pattern should match a 5-byte run: ok=%v err=%v", ok, err)
	}
}
