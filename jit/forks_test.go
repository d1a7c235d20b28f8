package jit

import "testing"

func TestEnableEIP(t *testing.T) {
	tests := []struct {
		name    string
		eip     int
		wantErr bool
		check   func(Rules) bool
	}{
		{"push0", 3855, false, func(r Rules) bool { return r.PUSH0 }},
		{"mcopy", 5656, false, func(r Rules) bool { return r.MCOPY }},
		{"unknown", 1559, true, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Rules{}
			err := EnableEIP(tt.eip, &r)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("EnableEIP(%d): expected error, got nil", tt.eip)
				}
				return
			}
			if err != nil {
				t.Fatalf("EnableEIP(%d): unexpected error: %v", tt.eip, err)
			}
			if !tt.check(r) {
				t.Fatalf("EnableEIP(%d): rule not applied: %+v", tt.eip, r)
			}
		})
	}
}

func TestValidEip(t *testing.T) {
	if !ValidEip(3855) || !ValidEip(5656) {
		t.Fatal("expected 3855 and 5656 to be valid")
	}
	if ValidEip(4844) {
		t.Fatal("4844 has no effect on calldata synthesis and should be invalid here")
	}
}

func TestDefaultRules(t *testing.T) {
	r := DefaultRules()
	if !r.PUSH0 || !r.MCOPY {
		t.Fatalf("DefaultRules should enable both gates: %+v", r)
	}
}
