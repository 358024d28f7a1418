// Package catalog lists the coloring templates shown on the home screen.
package catalog

// Template is one coloring page. Image is a file name relative to the
// configured templates directory.
type Template struct {
	ID          int
	Type        string
	Title       string
	Description string
	Image       string
	Status      string
}

var templates = []Template{
	{1, "butterfly", "Intricate Butterfly", "Design your own beautiful butterfly with this detailed pattern", "butterfly.jpg", "Graceful"},
	{2, "cupcake", "Whimsical Cupcake", "Create your own delightful cupcake with this starry, festive design", "cupcake.png", "Festive"},
	{3, "dinosaur", "Playful Dinosaur", "Embark on a prehistoric adventure with this cheerful dinosaur design", "dinosaur.jpg", "Adventurous"},
	{4, "gingerbread_man", "Festive Gingerbread Man", "Get into the holiday spirit with this jolly gingerbread man design", "gingerbread.jpg", "Holiday Cheer"},
	{5, "ladybug", "Cheerful Ladybugs", "Color these happy ladybugs in a vibrant nature scene for a delightful coloring experience", "ladybug.jpg", "Joyful"},
	{6, "easter_rabbits", "Joyful Easter Rabbits", "Celebrate Easter with this cheerful scene of rabbits and a decorated egg, perfect for festive coloring sessions", "rabbit.jpg", "Festive"},
	{7, "christmas_tree", "Festive Christmas Tree", "Get into the holiday spirit with this beautifully decorated Christmas tree, complete with ornaments, garlands, and a star on top", "christmastree.jpg", "Holiday Cheer"},
	{8, "sea_turtle", "Detailed Sea Turtle", "Dive into creativity with this beautifully detailed sea turtle template, perfect for a relaxing and educational coloring session", "tortoise.jpg", "Calm"},
	{9, "tractor", "Sturdy Tractor", "Dive into a rural adventure with this detailed tractor design, perfect for creative coloring sessions on the farm", "tractor.jpg", "Engaging"},
	{10, "unicorn", "Magical Unicorn", "Bring magic to life with this whimsical unicorn standing on a cloud and a rainbow background", "unicorn.png", "Enchanting"},
}

// All returns the templates in display order.
func All() []Template {
	out := make([]Template, len(templates))
	copy(out, templates)
	return out
}

// Find looks a template up by its type.
func Find(typ string) (Template, bool) {
	for _, t := range templates {
		if t.Type == typ {
			return t, true
		}
	}
	return Template{}, false
}
