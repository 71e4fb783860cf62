package constant

// Response variants per branch. The first entry of each list is the one used
// when templates are not randomised.
var (
	GreetingTemplates = []string{
		"🛍️ Bonjour ! Je suis votre assistant shopping intelligent. Comment puis-je vous aider aujourd'hui ?",
		"✨ Salut ! Ravi de vous revoir ! Que recherchez-vous ?",
		"🌟 Hello ! Prêt pour une expérience shopping personnalisée ?",
		"🎉 Bonjour ! J'ai hâte de vous aider à trouver le produit parfait !",
	}

	ReturningGreetingTemplates = []string{
		"✨ Ravi de vous revoir ! Comment puis-je vous aider aujourd'hui ?",
		"🌟 Hello ! Que puis-je faire pour vous cette fois ?",
		"🎉 Salut ! Prêt pour une nouvelle session shopping ?",
	}

	FarewellTemplates = []string{
		"🛒 Merci pour votre visite ! À bientôt !",
		"✨ Au revoir ! J'espère vous avoir aidé !",
		"💫 À plus tard ! Revenez quand vous voulez !",
		"🎁 Merci ! N'hésitez pas à revenir !",
	}

	HelpTemplates = []string{
		"🤝 Bien sûr ! Je peux vous aider à trouver des produits selon vos critères.",
		"💡 Avec plaisir ! Décrivez-moi ce que vous cherchez.",
		"🎯 Je suis là pour ça ! Parlez-moi de vos besoins.",
		"✨ Parfait ! Plus vous me donnez d'infos, mieux je peux vous conseiller !",
	}

	ProductSearchTemplates = []string{
		"🔍 Excellente idée ! Laissez-moi chercher ça pour vous.",
		"🛍️ Parfait ! Je vais vous trouver exactement ce qu'il vous faut.",
		"⭐ Super ! J'ai plusieurs options intéressantes à vous proposer.",
		"🎯 Génial ! Voici ce que j'ai trouvé pour vous.",
	}

	UnknownTemplates = []string{
		"🤔 Je ne suis pas sûr de bien comprendre. Pouvez-vous reformuler ?",
		"💭 Hmm, pouvez-vous être plus précis sur ce que vous cherchez ?",
		"🔄 Je n'ai pas bien saisi. Essayez de me donner plus de détails.",
		"❓ Pouvez-vous m'expliquer différemment ce que vous voulez ?",
	}

	UncertainShoppingTemplates = []string{
		"🛍️ Parfait ! Je vois que vous cherchez quelque chose de spécial.",
		"✨ Excellente idée ! Laissez-moi vous aider à trouver ce qu'il vous faut.",
		"🎯 Super ! J'ai quelques suggestions qui pourraient vous intéresser.",
		"💡 Génial ! Voici ce que j'ai trouvé selon vos critères.",
	}

	UncertainOtherTemplates = []string{
		"🤔 Je pense comprendre, mais pouvez-vous être plus précis ?",
		"💭 J'ai une idée de ce que vous cherchez, mais aidez-moi à mieux comprendre.",
		"🔍 Je vois plusieurs possibilités. Pouvez-vous me donner plus de détails ?",
	}

	OffTopicTemplates = []string{
		"Je suis un assistant e-commerce et je ne peux pas répondre aux questions générales ou non liées au shopping.",
		"Je suis spécialisé dans l'aide à l'achat. Je ne peux répondre qu'aux questions sur les produits et le shopping.",
		"Mon domaine d'expertise est l'e-commerce. Je peux vous aider à trouver des articles, des cadeaux ou des produits.",
		"Je suis conçu pour vous assister dans vos achats en ligne. Pour d'autres sujets, consultez d'autres sources.",
	}

	OffTopicSuggestions = []string{
		"👉 Par exemple : 'Je cherche un cadeau pour ma sœur'",
		"💡 Essayez : 'Montrez-moi des produits bleus'",
		"🎁 Ou demandez : 'Quel cadeau pour un budget de 50 DT ?'",
		"🛒 Vous pouvez dire : 'Je veux acheter une casquette'",
	}

	PersonalTemplates = []string{
		"Je suis un assistant e-commerce et je ne peux pas répondre aux questions personnelles ou générales.",
		"Je suis conçu uniquement pour vous aider avec vos achats. Je ne peux pas discuter de sujets personnels.",
		"Mon rôle est de vous assister dans vos recherches de produits. Je ne réponds qu'aux questions liées au shopping.",
		"Je suis spécialisé dans l'e-commerce. Pour les questions personnelles, consultez d'autres sources.",
	}

	PersonalRedirects = []string{
		"👉 Posez-moi une question liée aux produits ou aux cadeaux.",
		"💡 Demandez-moi plutôt ce que vous souhaitez acheter.",
		"🛍️ Je peux vous aider à trouver des produits ou des cadeaux.",
		"🎯 Parlez-moi de vos besoins d'achat.",
	}
)

// Acknowledgments for messages that mostly carry a slot value.
var SlotAcknowledgments = map[string]string{
	"recipient_info":   "👥 Parfait ! J'ai noté le destinataire.",
	"budget_info":      "💰 Très bien ! Budget enregistré.",
	"color_preference": "🌈 Excellent ! Couleur notée.",
	"age_info":         "🎂 Parfait ! Âge pris en compte.",
}

const (
	DefaultAcknowledgment = "✅ Information enregistrée !"

	PreferencesHint = "💡 Basé sur vos préférences, je peux vous proposer des suggestions personnalisées !"

	HelpCapabilitiesHeader = "💡 Voici ce que je peux faire:"

	SearchCriteriaPrefix = "📋 Critères: "
	SearchFoundFormat    = "✨ J'ai trouvé %d produit(s) correspondant !"
	SearchNoMatch        = "🤔 Je n'ai pas trouvé de produits correspondant exactement à vos critères."
	SearchAlternatives   = "💡 Essayons avec des critères différents ou regardez ces alternatives :"

	SlotUpdateFoundFormat = "🔍 Avec ces informations, j'ai trouvé %d produit(s) !"
	SlotUpdateNeedMore    = "🤔 J'ai besoin de quelques détails supplémentaires pour vous proposer des produits."

	UncertainUnderstoodFormat = "✅ J'ai compris: %s"
	UncertainFoundFormat      = "🔍 J'ai trouvé %d produit(s) correspondant !"
	UncertainRefineShopping   = "💬 Pour affiner la recherche, précisez-moi:\n• La couleur souhaitée\n• Votre budget maximum\n• L'occasion ou le style"
	UncertainTopicFormat      = "Vous parlez de: %s"
	UncertainRefineOther      = "💡 Pour mieux vous aider, précisez:\n• Ce que vous cherchez exactement\n• Votre budget\n• Pour qui c'est destiné"

	UnknownWithProducts = "💡 Basé sur vos critères, voici quelques suggestions:"
	UnknownCapabilities = "💡 Je suis un assistant e-commerce. Je peux vous aider à:\n• Trouver des produits par catégorie\n• Suggérer des cadeaux personnalisés\n• Filtrer par budget et couleur"
	UnknownExamples     = "👉 Soyez plus précis:\n• 'Je cherche un cadeau pour ma fille de 8 ans'\n• 'Montrez-moi des casquettes rouges'\n• 'Budget maximum 30 DT'"

	GeneralDetectedFormat = "🤖 J'ai détecté votre intention (%s) avec %.1f%% de confiance."
	GeneralHowToHelp      = "💡 Comment puis-je vous aider concrètement ?"
)

var HelpCapabilities = []string{
	"🔍 Recherche de produits par catégorie",
	"🎁 Suggestions de cadeaux personnalisés",
	"💰 Filtrage par budget",
	"🌈 Recherche par couleur",
	"👥 Recommandations selon l'âge/genre",
}

// Follow-up questions attached to fixed branches.
var (
	RedirectQuestions = []string{
		"🛍️ Que souhaitez-vous acheter ?",
		"🎁 Cherchez-vous un cadeau ?",
		"💰 Avez-vous un budget en tête ?",
	}

	GreetingQuestions = []string{
		"🎯 Pour commencer, dites-moi : c'est pour qui ?",
		"💰 Quel est votre budget approximatif ?",
		"🌈 Avez-vous une couleur préférée ?",
	}

	HelpQuestions = []string{
		"🛍️ Que voulez-vous acheter ?",
		"🎯 Avez-vous une catégorie en tête ?",
		"💰 Quel est votre budget ?",
	}

	UnknownQuestions = []string{
		"🛍️ Que recherchez-vous exactement ?",
		"🎯 Pouvez-vous me décrire ce que vous voulez acheter ?",
		"💡 Avez-vous une catégorie de produit en tête ?",
	}

	GeneralQuestions = []string{
		"🛍️ Que recherchez-vous ?",
		"🎯 Puis-je vous aider à trouver un produit ?",
		"💡 Avez-vous une question spécifique ?",
	}
)

// Clarification questions, asked in this priority order for missing slots.
const (
	ClarifyRecipient = "👥 C'est pour qui exactement ? (fille, garçon, femme, homme)"
	ClarifyAge       = "🎂 Quel âge a cet enfant ?"
	ClarifyBudget    = "💰 Quel est votre budget maximum ? (ex: 20 DT, 50 DT, 100 DT)"
	ClarifyColor     = "🌈 Quelle couleur préférez-vous ?"
	ClarifyOccasion  = "🎁 C'est pour quelle occasion ?"
	ClarifyCategory  = "🛍️ Quel type de produit vous intéresse ?"
)
