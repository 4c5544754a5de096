package theme

// Built-in themes, registered in the order the number shortcuts use.

func init() {
	MustRegister(&Theme{
		ID:          DefaultID,
		Name:        "Pink & Blue",
		Description: "Soft pink and sky blue, the classic look",
		Colors: Palette{
			PrimaryPink:   "#FFB6C1",
			SecondaryPink: "#FFC0CB",
			LightPink:     "#FFE4E1",
			SoftBlue:      "#87CEEB",
			SkyBlue:       "#B0E0E6",
			Lavender:      "#E6E6FA",
			Lilac:         "#C8A2C8",
			White:         "#FFFFFF",
			TextDark:      "#4A4A4A",
			TextLight:     "#7A7A7A",
		},
		Gradient:   [2]string{"#FFB6C1", "#87CEEB"},
		Background: "#1B1B2F",
	})

	MustRegister(&Theme{
		ID:          "cyberpunk",
		Name:        "Cyberpunk",
		Description: "Neon on black",
		Colors: Palette{
			PrimaryPink:   "#FF00FF",
			SecondaryPink: "#FF1493",
			LightPink:     "#FF69B4",
			SoftBlue:      "#00FFFF",
			SkyBlue:       "#00CED1",
			Lavender:      "#9400D3",
			Lilac:         "#8A2BE2",
			White:         "#FFFFFF",
			TextDark:      "#E0E0E0",
			TextLight:     "#B0B0B0",
		},
		Gradient:   [2]string{"#FF00FF", "#00FFFF"},
		Background: "#0A0A0A",
	})

	MustRegister(&Theme{
		ID:          "ancient",
		Name:        "Ink & Silk",
		Description: "Traditional ink-wash tones",
		Colors: Palette{
			PrimaryPink:   "#E8B4B8",
			SecondaryPink: "#F5DEB3",
			LightPink:     "#FFF8DC",
			SoftBlue:      "#ADD8E6",
			SkyBlue:       "#87CEEB",
			Lavender:      "#DDA0DD",
			Lilac:         "#DA70D6",
			White:         "#FFFAFA",
			TextDark:      "#2F2F2F",
			TextLight:     "#696969",
		},
		Gradient:   [2]string{"#E8B4B8", "#ADD8E6"},
		Background: "#FFF8DC",
	})

	MustRegister(&Theme{
		ID:          "sakura",
		Name:        "Sakura",
		Description: "Cherry blossom pinks",
		Colors: Palette{
			PrimaryPink:   "#FFB7C5",
			SecondaryPink: "#FFC0CB",
			LightPink:     "#FFE4E1",
			SoftBlue:      "#E6E6FA",
			SkyBlue:       "#D8BFD8",
			Lavender:      "#DDA0DD",
			Lilac:         "#EE82EE",
			White:         "#FFFFFF",
			TextDark:      "#4A3F44",
			TextLight:     "#7A6A72",
		},
		Gradient:   [2]string{"#FFB7C5", "#E6E6FA"},
		Background: "#FFE4E1",
	})

	MustRegister(&Theme{
		ID:          "ocean",
		Name:        "Deep Ocean",
		Description: "Calm deep blues",
		Colors: Palette{
			PrimaryPink:   "#87CEEB",
			SecondaryPink: "#B0E0E6",
			LightPink:     "#E0FFFF",
			SoftBlue:      "#4682B4",
			SkyBlue:       "#5F9EA0",
			Lavender:      "#B0C4DE",
			Lilac:         "#778899",
			White:         "#FFFFFF",
			TextDark:      "#2F4F4F",
			TextLight:     "#696969",
		},
		Gradient:   [2]string{"#87CEEB", "#4682B4"},
		Background: "#E0FFFF",
	})
}
