package domain

// Service is an installation/maintenance service offered on the storefront.
// The catalog is static and served read-only.
type Service struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Icon        string   `json:"icon"`
	Features    []string `json:"features"`
}

// ServiceCatalog lists the services shown on the services page.
var ServiceCatalog = []Service{
	{
		ID:          "installation",
		Title:       "CCTV Installation",
		Description: "Professional installation of surveillance systems for homes and businesses.",
		Icon:        "video",
		Features: []string{
			"Expert technicians with years of experience",
			"Proper camera placement for maximum coverage",
			"Clean and concealed wiring installation",
			"System testing and configuration",
			"User training on system operation",
		},
	},
	{
		ID:          "maintenance",
		Title:       "Maintenance & Repair",
		Description: "Regular maintenance and prompt repair services to keep your systems running.",
		Icon:        "tool",
		Features: []string{
			"Scheduled maintenance plans",
			"Emergency repair services",
			"Camera cleaning and adjustment",
			"Software updates and upgrades",
			"System health monitoring",
		},
	},
	{
		ID:          "consultation",
		Title:       "Security Consultation",
		Description: "Expert advice on the best security solutions for your specific needs.",
		Icon:        "shield",
		Features: []string{
			"On-site security assessment",
			"Customized security planning",
			"Budget-friendly recommendations",
			"Integration with existing systems",
			"Future-proof security solutions",
		},
	},
	{
		ID:          "remote-monitoring",
		Title:       "Remote Monitoring",
		Description: "24/7 monitoring services to keep an eye on your property when you can't.",
		Icon:        "eye",
		Features: []string{
			"Real-time surveillance monitoring",
			"Immediate alert notifications",
			"Monthly activity reports",
			"Video verification of alarms",
			"Reduced false alarm rates",
		},
	},
}
