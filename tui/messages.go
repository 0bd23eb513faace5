package tui

import "participativos/models"

// DatasetLoadedMsg carries the merged dataset once both sources are read.
type DatasetLoadedMsg struct {
	Dataset *models.Dataset
}

// searchSettledMsg fires when the search box has been idle for the debounce
// interval. Only the message whose seq matches the latest keystroke applies.
type searchSettledMsg struct {
	seq int
}
