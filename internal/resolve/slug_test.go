package resolve

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Varun Sundar", "varun-sundar"},
		{"Ariel Ledesma", "ariel-ledesma"},
		{"varun-sundar", "varun-sundar"},
		{"varun_sundar", "varun-sundar"},
		{"Varun Sundar!@#", "varun-sundar"},
		{"Ariel Ledesma (Senior)", "ariel-ledesma-senior"},
		{"Varun    Sundar", "varun-sundar"},
		{"", ""},
		{"-varun-sundar-", "varun-sundar"},
	}
	for _, c := range cases {
		if got := Slugify(c.in); got != c.want {
			t.Errorf("Slugify(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestUnslugify(t *testing.T) {
	cases := []struct{ in, want string }{
		{"varun-sundar", "Varun Sundar"},
		{"ariel-ledesma", "Ariel Ledesma"},
		{"varun", "Varun"},
		{"varun-sundar-senior", "Varun Sundar Senior"},
		{"", ""},
		{"Varun-Sundar", "Varun Sundar"},
	}
	for _, c := range cases {
		if got := Unslugify(c.in); got != c.want {
			t.Errorf("Unslugify(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
