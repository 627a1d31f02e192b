package video

import "github.com/streamhive/videos-ms-go/internal/model"

// Qualities is the fixed ordered ladder every published video gets. A video
// is either published with all of them or not published at all.
var Qualities = []model.QualityProfile{
	{Name: "360p", Width: 640, Height: 360, BitrateKbs: 800},
	{Name: "480p", Width: 854, Height: 480, BitrateKbs: 1200},
	{Name: "720p", Width: 1280, Height: 720, BitrateKbs: 2500},
	{Name: "1080p", Width: 1920, Height: 1080, BitrateKbs: 5000},
}
