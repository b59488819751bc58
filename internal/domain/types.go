package domain

// AllCategory is the sentinel category that lists every script. It is never
// deletable and always sorts first.
const AllCategory = "全部"

// Theme identifies one of the built-in panel themes.
type Theme string

const (
	ThemeDark              Theme = "dark"
	ThemeNeumorphism       Theme = "neumorphism"
	ThemeCute              Theme = "cute"
	ThemeHanddrawn         Theme = "handdrawn"
	ThemeGlassmorphismDark Theme = "glassmorphism-dark"
)

// SaveLocation selects where clipboard images are written.
type SaveLocation string

const (
	SaveLocationDesktop   SaveLocation = "desktop"
	SaveLocationDocuments SaveLocation = "documents"
	SaveLocationProject   SaveLocation = "project"
	SaveLocationCustom    SaveLocation = "custom"
)

// Settings is the single persisted panel document.
type Settings struct {
	Version            string                 `json:"version"`
	ScriptsFolderPath  *string                `json:"scriptsFolderPath,omitempty"`
	ScriptSettings     map[string]ScriptEntry `json:"scriptSettings"`
	Categories         []string               `json:"categories"`
	AllTags            []string               `json:"allTags"`
	LayoutSettings     LayoutSettings         `json:"layoutSettings"`
	Theme              Theme                  `json:"theme"`
	BackgroundSettings *BackgroundSettings    `json:"backgroundSettings"`
	ClipboardImport    ClipboardImport        `json:"clipboardImport"`
	LastSaved          *string                `json:"lastSaved"`
}

// FolderPath returns the scripts folder or an empty string when none is chosen.
func (s Settings) FolderPath() string {
	if s.ScriptsFolderPath == nil {
		return ""
	}
	return *s.ScriptsFolderPath
}

// ScriptEntry holds user metadata for one script file, keyed by file name.
type ScriptEntry struct {
	DisplayName string   `json:"displayName,omitempty"`
	Description string   `json:"description,omitempty"`
	ImagePath   string   `json:"imagePath,omitempty"`
	Category    string   `json:"category,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// LayoutSettings stores list/grid mode, item scale and sidebar width.
type LayoutSettings struct {
	IsGridLayout bool    `json:"isGridLayout"`
	CurrentScale float64 `json:"currentScale"`
	SidebarWidth int     `json:"sidebarWidth"`
}

// BackgroundSettings describes the decorative background media.
type BackgroundSettings struct {
	FileData   string `json:"fileData"`
	FileName   string `json:"fileName"`
	FileType   string `json:"fileType"`
	Blur       int    `json:"blur"`
	Brightness int    `json:"brightness"`
}

// ClipboardImport configures clipboard-to-file image import.
type ClipboardImport struct {
	Enabled      bool         `json:"enabled"`
	SaveLocation SaveLocation `json:"saveLocation"`
	CustomPath   string       `json:"customPath"`
}

// ThemeSettings is the theme block carried by export bundles.
type ThemeSettings struct {
	Theme      Theme  `json:"theme"`
	ThemeTitle string `json:"themeTitle"`
}

// ExportBundle is the portable document written by the export action.
type ExportBundle struct {
	Version            string                 `json:"version"`
	ScriptSettings     map[string]ScriptEntry `json:"scriptSettings"`
	Categories         []string               `json:"categories"`
	AllTags            []string               `json:"allTags"`
	LayoutSettings     LayoutSettings         `json:"layoutSettings"`
	ScriptsFolderPath  string                 `json:"scriptsFolderPath"`
	ThemeSettings      ThemeSettings          `json:"themeSettings"`
	BackgroundSettings *BackgroundSettings    `json:"backgroundSettings"`
	ExportTime         string                 `json:"exportTime"`
}

// Script is one file found in the scripts folder.
type Script struct {
	Name string `json:"name"`
	Path string `json:"path"`
}
