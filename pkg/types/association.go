package types

// FileAssociation describes the resolved default application for one tracked
// file extension. ApplicationName always carries a usable label, falling back
// to a placeholder when nothing could be resolved; ApplicationPath may be
// empty when no install location was found.
type FileAssociation struct {
	Extension       string `json:"extension"`
	ApplicationName string `json:"applicationName"`
	ApplicationPath string `json:"applicationPath"`
}
