package dmo

import "testing"

func TestOperatorConstructorsSetKind(t *testing.T) {
	cases := []struct {
		name string
		op   Operator
		want Kind
	}{
		{"NOOP", NOOP(), KindNOOP},
		{"Exit", Exit(1.5), KindExit},
		{"Print", Print(), KindPrint},
		{"Draw", Draw(1, 2, 3.0), KindDraw},
		{"Clear", Clear(65), KindClear},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if c.op.Kind != c.want {
				t.Fatalf("Kind = %v, want %v", c.op.Kind, c.want)
			}
		})
	}
}

func TestDrawStoresArguments(t *testing.T) {
	op := Draw(4, 9, 2.5)
	if op.SpriteIdx != 4 || op.Offset != 9 || op.Speed != 2.5 {
		t.Fatalf("Draw(4, 9, 2.5) = %+v", op)
	}
}
