package utils_test

import (
	"testing"

	"calendarcorp/src-server/utils"
)

func TestTitleCasePtBr(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"RECURSOS HUMANOS", "Recursos Humanos"},
		{"tecnologia da informação", "Tecnologia da Informação"},
		{"suporte de ti", "Suporte de TI"},
		{"rh e ti", "RH e TI"},
		{"DE volta", "De Volta"},
		{"ponte e", "Ponte E"},
		{"  gestão   dos   contratos ", "Gestão dos Contratos"},
		{"tiago", "Tiago"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		if got := utils.TitleCasePtBr(tt.in); got != tt.want {
			t.Errorf("TitleCasePtBr(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCleanupString(t *testing.T) {
	if got := utils.CleanupString("  a \t b\n"); got != "a b" {
		t.Errorf("CleanupString = %q", got)
	}
}
