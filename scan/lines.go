package scan

// splitLines splits raw into lines. "\n", "\r\n" and a lone "\r" each end a
// line; a terminator at the very end does not start another line.
func splitLines(raw string) []string {
	if raw == "" {
		return nil
	}

	var lines []string
	start := 0
	for i := 0; i < len(raw); i++ {
		switch raw[i] {
		case '\n':
			lines = append(lines, raw[start:i])
			start = i + 1
		case '\r':
			lines = append(lines, raw[start:i])
			if i+1 < len(raw) && raw[i+1] == '\n' {
				i++
			}
			start = i + 1
		}
	}
	if start < len(raw) {
		lines = append(lines, raw[start:])
	}
	return lines
}
