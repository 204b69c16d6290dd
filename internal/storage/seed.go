package storage

import "context"

// DefaultTemplates is the built-in quest catalog: three templates per stat
// category so daily selection has room to vary.
func DefaultTemplates() []Template {
	return []Template{
		{ID: "str-pushups", Title: "30 push-ups", Description: "Three sets of ten count.", Stat: "strength", XPReward: 50, Active: true},
		{ID: "str-carry", Title: "Carry the groceries home", Description: "No car, no delivery.", Stat: "strength", XPReward: 40, Active: true},
		{ID: "str-plank", Title: "2-minute plank", Description: "Accumulated time counts.", Stat: "strength", XPReward: 45, Active: true},

		{ID: "agi-stretch", Title: "15 minutes of stretching", Description: "Full body, slow.", Stat: "agility", XPReward: 40, Active: true},
		{ID: "agi-stairs", Title: "Take the stairs all day", Description: "Elevators are for cargo.", Stat: "agility", XPReward: 35, Active: true},
		{ID: "agi-walk", Title: "Brisk 20-minute walk", Description: "Outside, headphones optional.", Stat: "agility", XPReward: 45, Active: true},

		{ID: "vit-sleep", Title: "In bed before 23:00", Description: "Screens off counts double, but no one checks.", Stat: "vitality", XPReward: 50, Active: true},
		{ID: "vit-water", Title: "Drink 2 liters of water", Description: "Coffee does not count.", Stat: "vitality", XPReward: 35, Active: true},
		{ID: "vit-cook", Title: "Cook a real meal", Description: "From ingredients, not a box.", Stat: "vitality", XPReward: 45, Active: true},

		{ID: "int-read", Title: "Read 20 pages", Description: "Any book you are actually reading.", Stat: "intelligence", XPReward: 50, Active: true},
		{ID: "int-learn", Title: "30 minutes of deliberate study", Description: "Course, language, or docs.", Stat: "intelligence", XPReward: 55, Active: true},
		{ID: "int-puzzle", Title: "Solve one hard puzzle", Description: "Chess, crossword, or kata.", Stat: "intelligence", XPReward: 40, Active: true},

		{ID: "dis-plan", Title: "Plan tomorrow tonight", Description: "Three concrete tasks, written down.", Stat: "discipline", XPReward: 40, Active: true},
		{ID: "dis-inbox", Title: "Inbox to zero", Description: "Archive, reply, or delete.", Stat: "discipline", XPReward: 45, Active: true},
		{ID: "dis-nosnooze", Title: "Up on the first alarm", Description: "Snooze is a penalty point with extra steps.", Stat: "discipline", XPReward: 50, Active: true},

		{ID: "cha-reach", Title: "Message someone you owe a reply", Description: "The one you keep postponing.", Stat: "charisma", XPReward: 40, Active: true},
		{ID: "cha-call", Title: "Call a friend or family member", Description: "Voice, not text.", Stat: "charisma", XPReward: 50, Active: true},
		{ID: "cha-thanks", Title: "Thank someone specifically", Description: "Name the thing they did.", Stat: "charisma", XPReward: 35, Active: true},

		{ID: "wea-track", Title: "Log every expense today", Description: "All of them, even coffee.", Stat: "wealth", XPReward: 40, Active: true},
		{ID: "wea-nospend", Title: "No-spend day", Description: "Essentials excepted.", Stat: "wealth", XPReward: 55, Active: true},
		{ID: "wea-review", Title: "Review one subscription", Description: "Keep it or kill it.", Stat: "wealth", XPReward: 35, Active: true},
	}
}

// SeedTemplates upserts the default catalog. Safe to run repeatedly.
func SeedTemplates(ctx context.Context, repo *TemplateRepo) (int, error) {
	templates := DefaultTemplates()
	for _, t := range templates {
		if err := repo.Upsert(ctx, t); err != nil {
			return 0, err
		}
	}
	return len(templates), nil
}
