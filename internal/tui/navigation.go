package tui

// calculateScrollOffset computes the new scroll offset to keep cursor
// visible within pageSize.
func calculateScrollOffset(cursor, currentOffset, pageSize int) int {
	if cursor < currentOffset {
		return cursor
	}
	if cursor >= currentOffset+pageSize {
		return cursor - pageSize + 1
	}
	return currentOffset
}

// ensureCursorVisible restores the selection-visibility invariant after any
// list transition: scrollOffset <= cursor < scrollOffset+pageSize.
func (m *Model) ensureCursorVisible() {
	m.scrollOffset = calculateScrollOffset(m.cursor, m.scrollOffset, m.pageSize())
	if m.scrollOffset < 0 {
		m.scrollOffset = 0
	}
}

// navigateList applies one list navigation key. Returns false when the key
// is not a navigation key.
func (m *Model) navigateList(key string) bool {
	count := len(m.rows)
	if count == 0 {
		return false // Empty result set disables index-based transitions
	}

	switch key {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < count-1 {
			m.cursor++
		}
	case "pgup", "ctrl+b":
		m.cursor -= m.pageSize()
		if m.cursor < 0 {
			m.cursor = 0
		}
		m.scrollOffset -= m.pageSize()
		if m.scrollOffset < 0 {
			m.scrollOffset = 0
		}
	case "pgdown", "ctrl+f":
		m.cursor += m.pageSize()
		if m.cursor >= count {
			m.cursor = count - 1
		}
		maxOffset := count - m.pageSize()
		if maxOffset < 0 {
			maxOffset = 0
		}
		m.scrollOffset += m.pageSize()
		if m.scrollOffset > maxOffset {
			m.scrollOffset = maxOffset
		}
	case "home", "g":
		m.cursor = 0
	case "end", "G":
		m.cursor = count - 1
	default:
		return false
	}

	m.ensureCursorVisible()
	return true
}

// maxPagerTop is the largest valid top line for the pager.
func (m Model) maxPagerTop() int {
	max := len(m.lines) - m.pagerPageSize()
	if max < 0 {
		return 0
	}
	return max
}

// clampPagerTop re-applies the pager invariant after a resize or buffer
// change.
func (m *Model) clampPagerTop() {
	if m.pagerTop > m.maxPagerTop() {
		m.pagerTop = m.maxPagerTop()
	}
	if m.pagerTop < 0 {
		m.pagerTop = 0
	}
}

// navigatePager applies one pager navigation key. Returns false when the
// key is not a navigation key.
func (m *Model) navigatePager(key string) bool {
	switch key {
	case "up", "k":
		m.pagerTop--
	case "down", "j":
		m.pagerTop++
	case "pgup", "ctrl+b":
		m.pagerTop -= m.pagerPageSize()
	case "pgdown", "ctrl+f", " ":
		m.pagerTop += m.pagerPageSize()
	case "home", "g":
		m.pagerTop = 0
	case "end", "G":
		m.pagerTop = m.maxPagerTop()
	default:
		return false
	}
	m.clampPagerTop()
	return true
}
