package domain

// DefaultProducts is the bundled catalog used when the object store has no
// snapshot yet, and as the final link of the read fallback chain. A reset
// writes this set back as a fresh snapshot.
var DefaultProducts = []Product{
	{
		ID:          "cctv-1",
		Name:        "HD Security Camera System",
		Description: "Complete HD security camera system with night vision and motion detection.",
		Price:       12999,
		Category:    "CCTV",
		Image:       PlaceholderImage,
		Rating:      4.5,
		Reviews:     24,
		Featured:    true,
		IsNew:       true,
		InStock:     true,
		Discount:    10,
		Specifications: []Specification{
			{Name: "Resolution", Value: "1080p HD"},
			{Name: "Night Vision", Value: "Yes, up to 30ft"},
			{Name: "Motion Detection", Value: "Yes"},
			{Name: "Storage", Value: "1TB HDD included"},
			{Name: "Channels", Value: "8 channels"},
			{Name: "Weather Resistant", Value: "IP66 rated"},
		},
	},
	{
		ID:          "cctv-2",
		Name:        "Wireless Home Security System",
		Description: "Easy to install wireless security system with smartphone integration.",
		Price:       8999,
		Category:    "CCTV",
		Image:       PlaceholderImage,
		Rating:      4.2,
		Reviews:     18,
		Featured:    true,
		InStock:     true,
		Specifications: []Specification{
			{Name: "Resolution", Value: "720p HD"},
			{Name: "Night Vision", Value: "Yes, up to 20ft"},
			{Name: "Motion Detection", Value: "Yes"},
			{Name: "Storage", Value: "Cloud storage (subscription required)"},
			{Name: "Channels", Value: "4 channels"},
			{Name: "Weather Resistant", Value: "IP65 rated"},
		},
	},
	{
		ID:          "cctv-3",
		Name:        "4K Ultra HD Security System",
		Description: "Professional grade 4K security system for maximum clarity and detail.",
		Price:       24999,
		Category:    "CCTV",
		Image:       PlaceholderImage,
		Rating:      4.8,
		Reviews:     32,
		Featured:    true,
		InStock:     true,
		Discount:    10,
		Specifications: []Specification{
			{Name: "Resolution", Value: "4K Ultra HD"},
			{Name: "Night Vision", Value: "Yes, up to 50ft"},
			{Name: "Motion Detection", Value: "Yes, with AI person detection"},
			{Name: "Storage", Value: "2TB HDD included"},
			{Name: "Channels", Value: "16 channels"},
			{Name: "Weather Resistant", Value: "IP67 rated"},
		},
	},
	{
		ID:          "cctv-4",
		Name:        "PTZ Dome Camera",
		Description: "Pan-Tilt-Zoom camera with 360° coverage and 30x optical zoom.",
		Price:       15999,
		Category:    "CCTV",
		Image:       PlaceholderImage,
		Rating:      4.6,
		Reviews:     15,
		Featured:    true,
		InStock:     true,
		Specifications: []Specification{
			{Name: "Resolution", Value: "1080p HD"},
			{Name: "Pan/Tilt/Zoom", Value: "360° pan, 90° tilt, 30x optical zoom"},
			{Name: "Night Vision", Value: "Yes, up to 40ft"},
			{Name: "Motion Detection", Value: "Yes"},
			{Name: "Weather Resistant", Value: "IP66 rated"},
			{Name: "Audio", Value: "Two-way audio"},
		},
	},
	{
		ID:          "dvr-1",
		Name:        "8-Channel DVR Recorder",
		Description: "Digital video recorder with 8 channels and 2TB storage capacity.",
		Price:       7999,
		Category:    "DVR",
		Image:       PlaceholderImage,
		Rating:      4.3,
		Reviews:     12,
		InStock:     true,
		Specifications: []Specification{
			{Name: "Channels", Value: "8 channels"},
			{Name: "Storage", Value: "2TB HDD included"},
			{Name: "Resolution", Value: "Supports up to 4K"},
			{Name: "Remote Access", Value: "Yes, via smartphone app"},
			{Name: "HDMI Output", Value: "Yes"},
			{Name: "Motion Detection", Value: "Yes"},
		},
	},
	{
		ID:          "dvr-2",
		Name:        "16-Channel NVR System",
		Description: "Network video recorder with 16 channels and 4TB storage for IP cameras.",
		Price:       12999,
		Category:    "DVR",
		Image:       PlaceholderImage,
		Rating:      4.7,
		Reviews:     22,
		IsNew:       true,
		InStock:     true,
		Specifications: []Specification{
			{Name: "Channels", Value: "16 channels"},
			{Name: "Storage", Value: "4TB HDD included"},
			{Name: "Resolution", Value: "Supports up to 4K"},
			{Name: "Remote Access", Value: "Yes, via smartphone app"},
			{Name: "HDMI Output", Value: "Yes"},
			{Name: "AI Features", Value: "Person and vehicle detection"},
		},
	},
	{
		ID:          "acc-1",
		Name:        "CCTV Cable (100m)",
		Description: "High-quality coaxial cable for CCTV installations, 100 meter roll.",
		Price:       1299,
		Category:    "Accessories",
		Image:       PlaceholderImage,
		Rating:      4.4,
		Reviews:     28,
		InStock:     true,
		Specifications: []Specification{
			{Name: "Length", Value: "100 meters"},
			{Name: "Type", Value: "RG59 Coaxial"},
			{Name: "Connectors", Value: "BNC connectors included"},
			{Name: "Shielding", Value: "Double shielded"},
			{Name: "Weather Resistant", Value: "Yes"},
			{Name: "Color", Value: "Black"},
		},
	},
	{
		ID:          "acc-2",
		Name:        "Power Supply Unit",
		Description: "12V DC power supply unit for CCTV cameras with 8 outputs.",
		Price:       1499,
		Category:    "Accessories",
		Image:       PlaceholderImage,
		Rating:      4.2,
		Reviews:     14,
		InStock:     true,
		Discount:    13,
		Specifications: []Specification{
			{Name: "Output", Value: "12V DC"},
			{Name: "Channels", Value: "8 outputs"},
			{Name: "Protection", Value: "Short circuit and overload protection"},
			{Name: "Input", Value: "100-240V AC"},
			{Name: "Efficiency", Value: "90%"},
			{Name: "Dimensions", Value: "200 x 150 x 50mm"},
		},
	},
}

// FeaturedDefaults returns the featured subset of the bundled catalog.
func FeaturedDefaults() []Product {
	var out []Product
	for _, p := range DefaultProducts {
		if p.Featured {
			out = append(out, p)
		}
	}
	return out
}
