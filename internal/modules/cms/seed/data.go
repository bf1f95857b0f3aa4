package seed

import "github.com/sinfini-marketing/sinfini-web-be/internal/modules/cms/models"

const unsplash = "https://images.unsplash.com/"

func demoProducts() []models.Product {
	return []models.Product{
		{
			Name:        "Premium Cotton Fabric - White",
			Category:    "Cotton Fabrics",
			Description: "High-quality 100% pure cotton fabric, perfect for garments and home textiles. Soft, breathable, and durable. Available in bulk quantities for international export.",
			ImageURL:    unsplash + "photo-1558769132-cb1aea1f1f57?w=800&q=80",
		},
		{
			Name:        "Synthetic Polyester Blend",
			Category:    "Synthetic Fabrics",
			Description: "Premium polyester blend fabric with excellent durability and wrinkle resistance. Suited to modern garments, sportswear and industrial applications.",
			ImageURL:    unsplash + "photo-1626497764552-8032d8d6e2f9?w=800&q=80",
		},
		{
			Name:        "Elegant Ladies Dress Collection",
			Category:    "Garments",
			Description: "Ladies dresses in premium fabrics and contemporary designs for retail and boutique buyers. Exported to markets across Asia, Africa, and Europe.",
			ImageURL:    unsplash + "photo-1595777457583-95e059d581b8?w=800&q=80",
		},
		{
			Name:        "Luxury Bed Linen Set",
			Category:    "Linens",
			Description: "Bed linen sets in fine cotton: fitted sheets, flat sheets and pillowcases with a high thread count for hotels and homes.",
			ImageURL:    unsplash + "photo-1631049307264-da0ec9d70304?w=800&q=80",
		},
		{
			Name:        "Terry Towel Collection",
			Category:    "Terry Toweling",
			Description: "Soft and absorbent terry towels in premium cotton. Bath, hand and face towels for hospitality and retail.",
			ImageURL:    unsplash + "photo-1604696980386-c589383f0e0a?w=800&q=80",
		},
		{
			Name:        "Printed Cotton Fabric - Floral",
			Category:    "Cotton Fabrics",
			Description: "Floral printed cotton fabric for ladies garments and home decor. Pre-washed and shrink-resistant.",
			ImageURL:    unsplash + "photo-1581578731548-c64695cc6952?w=800&q=80",
		},
		{
			Name:        "Table Linen Collection",
			Category:    "Linens",
			Description: "Tablecloths, napkins and runners in cotton and linen blends for restaurants, hotels and home dining.",
			ImageURL:    unsplash + "photo-1607643147229-1cc4c249711b?w=800&q=80",
		},
		{
			Name:        "Bamboo Terry Towels - Eco-Friendly",
			Category:    "Terry Toweling",
			Description: "Bamboo terry towels: super soft, highly absorbent and naturally antibacterial. Biodegradable and renewable material.",
			ImageURL:    unsplash + "photo-1582735689369-4fe89db7114c?w=800&q=80",
		},
	}
}

func demoBlogPosts() []models.BlogPost {
	return []models.BlogPost{
		{
			Title: "The Future of Textile Exports in UAE",
			Content: "<h2>Leading the Way in Global Textile Trade</h2>" +
				"<p>The United Arab Emirates has emerged as a major hub for textile exports, connecting manufacturers with global markets.</p>" +
				"<h3>Why UAE for Textile Exports?</h3>" +
				"<p>Its location gives direct access to markets across Asia, Africa, and Europe, and its logistics infrastructure keeps deliveries on time.</p>",
			Author:   "Sinfini Marketing Team",
			ImageURL: unsplash + "photo-1487017159836-4e23ece2e4cf?w=800&q=80",
		},
		{
			Title: "Sustainable Textiles: Our Commitment to the Environment",
			Content: "<h2>Eco-Friendly Textile Solutions</h2>" +
				"<p>We offer organic cotton, bamboo fiber and recycled polyester with the same quality and durability as traditional fabrics.</p>" +
				"<h3>Ethical Manufacturing</h3>" +
				"<p>All products are sourced from manufacturers who follow ethical labor practices and environmental regulations.</p>",
			Author:   "Environmental Team",
			ImageURL: unsplash + "photo-1532996122724-e3c354a0b15b?w=800&q=80",
		},
		{
			Title: "Cotton vs Synthetic: Choosing the Right Fabric",
			Content: "<h2>Understanding Fabric Types</h2>" +
				"<h3>Natural Cotton Benefits</h3><ul><li>Breathable and comfortable</li><li>Hypoallergenic</li><li>Biodegradable</li></ul>" +
				"<h3>Synthetic Fabric Advantages</h3><ul><li>Durable</li><li>Wrinkle-resistant</li><li>Quick-drying</li></ul>",
			Author:   "Product Specialist",
			ImageURL: unsplash + "photo-1558769132-cb1aea1f1f57?w=800&q=80",
		},
	}
}

func demoGalleryItems() []models.GalleryItem {
	items := []struct{ photo, title, description string }{
		{"photo-1558769132-cb1aea1f1f57", "Premium Cotton Fabrics", "Our collection of premium cotton fabrics"},
		{"photo-1626497764552-8032d8d6e2f9", "Fabric Manufacturing", "State-of-the-art fabric production"},
		{"photo-1587825140708-dfaf72ae4b04", "Warehouse Facilities", "Our modern storage and distribution center"},
		{"photo-1581578731548-c64695cc6952", "Colorful Textile Range", "Wide variety of colors and patterns"},
		{"photo-1595777457583-95e059d581b8", "Fashion Garments", "Ready-to-wear ladies garments"},
		{"photo-1631049307264-da0ec9d70304", "Luxury Bedding", "Premium bed linen collection"},
	}

	out := make([]models.GalleryItem, 0, len(items))
	for _, it := range items {
		out = append(out, models.GalleryItem{
			MediaType:   models.MediaTypeImage,
			MediaURL:    unsplash + it.photo + "?w=800&q=80",
			Title:       it.title,
			Description: it.description,
		})
	}
	return out
}
