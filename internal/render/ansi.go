package render

import (
	"html"
	"regexp"
	"strconv"
	"strings"
)

// csiPattern matches ANSI CSI escape sequences. Only SGR ("m") sequences
// affect the output; the rest are dropped.
var csiPattern = regexp.MustCompile("\x1b\\[([0-9;]*)([A-Za-z])")

var ansiColors = [...]string{"black", "red", "green", "yellow", "blue", "magenta", "cyan", "white"}

// ansiState is the text style in effect between escape sequences.
type ansiState struct {
	fg        string
	bg        string
	bold      bool
	underline bool
}

func (s ansiState) classes() string {
	var c []string
	if s.fg != "" {
		c = append(c, "ansi-"+s.fg+"-fg")
	}
	if s.bg != "" {
		c = append(c, "ansi-"+s.bg+"-bg")
	}
	if s.bold {
		c = append(c, "ansi-bold")
	}
	if s.underline {
		c = append(c, "ansi-underline")
	}
	return strings.Join(c, " ")
}

// apply updates the state with the parameters of one SGR sequence.
func (s ansiState) apply(params string) ansiState {
	if params == "" {
		return ansiState{}
	}

	codes := strings.Split(params, ";")
	for i := 0; i < len(codes); i++ {
		n, err := strconv.Atoi(codes[i])
		if err != nil {
			continue
		}
		switch {
		case n == 0:
			s = ansiState{}
		case n == 1:
			s.bold = true
		case n == 22:
			s.bold = false
		case n == 4:
			s.underline = true
		case n == 24:
			s.underline = false
		case n >= 30 && n <= 37:
			s.fg = ansiColors[n-30]
		case n == 39:
			s.fg = ""
		case n >= 40 && n <= 47:
			s.bg = ansiColors[n-40]
		case n == 49:
			s.bg = ""
		case n >= 90 && n <= 97:
			s.fg = ansiColors[n-90] + "-intense"
		case n >= 100 && n <= 107:
			s.bg = ansiColors[n-100] + "-intense"
		case n == 38 || n == 48:
			// extended colours are not mapped; skip their arguments
			if i+1 < len(codes) && codes[i+1] == "5" {
				i += 2
			} else if i+1 < len(codes) && codes[i+1] == "2" {
				i += 4
			}
		}
	}
	return s
}

// ansiToHTML escapes text for HTML and converts SGR colour sequences into
// spans with ansi-* classes.
func ansiToHTML(text string) string {
	var (
		b     strings.Builder
		state ansiState
		last  int
	)

	write := func(segment string) {
		if segment == "" {
			return
		}
		escaped := html.EscapeString(segment)
		if classes := state.classes(); classes != "" {
			b.WriteString(`<span class="` + classes + `">` + escaped + `</span>`)
			return
		}
		b.WriteString(escaped)
	}

	for _, m := range csiPattern.FindAllStringSubmatchIndex(text, -1) {
		write(text[last:m[0]])
		last = m[1]
		if text[m[4]:m[5]] == "m" {
			state = state.apply(text[m[2]:m[3]])
		}
	}
	write(text[last:])

	return b.String()
}
