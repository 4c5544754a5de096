package danmaku

//nolint:gochecknoglobals // Static message tables.
var (
	DefaultMessages = []string{
		"Happy New Year! ovo",
		"Wishing you prosperity! (✿◡‿◡)",
		"May all go well! OwO",
		"Good health! (^_−)☆",
		"May your wishes come true! (｡♥‿♥｡)",
		"Happiness to the whole family! ⊂((・▽・))⊃",
		"Full of vigor! ovo",
		"Peace every year! (´▽`ʃ♡ƪ)",
		"Happy Spring Festival! OwO",
		"Good fortune! (✿◡‿◡)",
	}

	SpecialMessages = []string{
		"(◕‿◕✿) Rainbow comments incoming! (◕‿◕✿)",
		"ovo Starlight sparkles! ovo",
		"OwO Fireworks bloom! OwO",
		"(✿◡‿◡) Magic comment! (✿◡‿◡)",
	}

	FireworkMessages = []string{
		"ovo The firework show begins! ovo",
		"(✿◡‿◡) So colorful! (✿◡‿◡)",
		"(｡♥‿♥｡) Dazzling! (｡♥‿♥｡)",
		"OwO Time to celebrate! OwO",
	}

	OneDayMessages = []string{
		"🎊 Spring Festival is tomorrow! ovo",
		"🐴 Last day before the Year of the Horse! OwO",
		"(✿◡‿◡) 24 hours to go! (✿◡‿◡)",
		"🎆 Get ready for the Year of the Horse! 🎆",
		"(｡♥‿♥｡) Happy New Year! One day left! (｡♥‿♥｡)",
	}

	SurpriseMessages = []string{
		"ovo You found the hidden egg! ovo",
		"(✿◡‿◡) Good luck in the Year of the Horse! (✿◡‿◡)",
		"OwO Off to a galloping start! OwO",
		"(｡♥‿♥｡) The horse brings fortune! (｡♥‿♥｡)",
	}

	NewYearMessages = []string{
		"ovo The New Year is here! ovo",
		"OwO Happy 2026, Year of the Horse! OwO",
		"(✿◡‿◡) Prosperity and all the best! (✿◡‿◡)",
		"(｡♥‿♥｡) Great luck in the Year of the Horse! (｡♥‿♥｡)",
	}
)
