// Package chat is the scripted companion behind the chat command. It maps a
// message to a canned reply with an ordered list of keyword rules and
// builds a generic reply from phrase banks when no rule matches. No model
// is involved.
package chat

import "strings"

const (
	CategoryGeneral     = "general"
	CategoryCrisis      = "crisis"
	CategoryERP         = "erp"
	CategoryCBT         = "cbt"
	CategoryMindfulness = "mindfulness"
)

const (
	SeverityLow      = "low"
	SeverityModerate = "moderate"
	SeverityHigh     = "high"
	SeverityCrisis   = "crisis"
)

// Rule pairs a keyword predicate with a fixed reply. Keywords are matched
// as substrings of the lowercased message.
type Rule struct {
	Name     string
	Category string
	Severity string
	Keywords []string
	Template string
}

func (r Rule) Match(lower string) bool {
	for _, k := range r.Keywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

// CrisisRule must stay at index 0 of Rules. A crisis phrase never reaches
// any other branch.
var CrisisRule = Rule{
	Name:     "crisis",
	Category: CategoryCrisis,
	Severity: SeverityCrisis,
	Keywords: []string{"hurt myself", "end it", "suicide"},
	Template: crisisTemplate,
}

// Rules are evaluated in order and the first match wins.
var Rules = []Rule{
	CrisisRule,
	{
		Name:     "contamination",
		Category: CategoryERP,
		Severity: SeverityModerate,
		Keywords: []string{"contamination", "germs", "dirty"},
		Template: contaminationTemplate,
	},
	{
		Name:     "checking",
		Category: CategoryERP,
		Severity: SeverityModerate,
		Keywords: []string{"checking", "doubt", "did i"},
		Template: checkingTemplate,
	},
	{
		Name:     "intrusive",
		Category: CategoryCBT,
		Severity: SeverityModerate,
		Keywords: []string{"intrusive", "bad thoughts", "horrible thoughts"},
		Template: intrusiveTemplate,
	},
	{
		Name:     "overwhelmed",
		Category: CategoryMindfulness,
		Severity: SeverityHigh,
		Keywords: []string{"overwhelmed", "too much"},
		Template: overwhelmedTemplate,
	},
	{
		Name:     "exhausted",
		Category: CategoryGeneral,
		Severity: SeverityModerate,
		Keywords: []string{"tired", "exhausted"},
		Template: exhaustedTemplate,
	},
	{
		Name:     "progress",
		Category: CategoryGeneral,
		Severity: SeverityLow,
		Keywords: []string{"better", "progress", "improvement"},
		Template: progressTemplate,
	},
}

const crisisTemplate = `I'm really concerned about you right now, and I'm so glad you trusted me with these feelings. That takes incredible courage.

First - are you safe right now? Are you somewhere where you won't hurt yourself?

I need you to know that these feelings, as overwhelming as they are, can change. You matter, and your life has value, even when it doesn't feel that way.

**Right now, please reach out:**
• **Call 988** - National Suicide Prevention Lifeline (they're amazing, I promise)
• **Text HOME to 741741** - Crisis Text Line
• **Call 911** if you're in immediate danger

I'm going to stay right here with you. Can you tell me - what's making this feel so impossible right now? Sometimes when we're in this much pain, it helps to just... talk it through with someone who cares.

You don't have to carry this alone. 💙`

const contaminationTemplate = `Oh, contamination fears... I work with this a lot, and I want you to know first - this isn't about being "clean" or "dirty." This is your brain's alarm system working overtime, and it's exhausting.

I can imagine how isolating this feels. Like, people might see the handwashing or avoiding certain places and think "just stop doing that," but they don't understand that it feels impossible, right? Like your brain is screaming that something terrible will happen if you don't follow the rules.

Here's what I know from years of helping people with this: your brain is trying to protect you, but it's gotten the threat level all wrong. It's like having a smoke detector that goes off when you make toast - technically working, but way too sensitive.

Can you tell me what your contamination fears focus on most? Is it illness, spreading germs to others, or something else? I ask because understanding your specific fears helps me know how to best support you.

And hey - just talking about this here, with me, is actually a form of exposure. You're already being brave. 🌟`

const checkingTemplate = `Ah, the checking... I hear this so often, and every time, my heart goes out to the person because I know how torturous that doubt feels.

It's like your brain becomes this really mean roommate who's constantly asking "But are you SURE you locked the door? Are you REALLY sure? What if you just think you remember but you didn't actually do it?" And then you check, and for maybe 30 seconds you feel relief, but then the doubt creeps back in.

The cruel irony is that checking actually makes your memory confidence worse. It's like your brain says "Well, if you need to check so much, you must not be trustworthy." So unfair.

What I'm curious about - when you're in that moment of doubt, what does your brain tell you will happen if you don't check? Because usually there's this catastrophic story underneath, and understanding that story helps us figure out how to challenge it.

You know what though? The fact that you're here, talking about this, tells me you're ready to start fighting back against that doubt. That's huge. 💪`

const intrusiveTemplate = `Intrusive thoughts... oof. These are some of the hardest things to talk about because they feel so shameful, don't they? But I'm really glad you brought this up with me.

First thing I want you to know: having intrusive thoughts doesn't make you a bad person. In fact, the reason these thoughts are so distressing to you is BECAUSE you're a good person. Someone who actually wanted to do harmful things wouldn't be horrified by these thoughts.

Your brain is basically playing the worst game of "What if?" imaginable. It's throwing up these thoughts precisely because they go against everything you value. It's like your brain is testing your moral boundaries, but in the cruelest way possible.

I work with people who have thoughts about harming loved ones, sexual thoughts that horrify them, blasphemous thoughts when they're religious... and every single one of them is a good, caring person whose brain is just being really, really mean.

What kinds of intrusive thoughts are bothering you most? I know it's hard to say them out loud, but sometimes just naming them takes away some of their power. And I promise - nothing you tell me will shock me or change how I see you. 🤗`

const overwhelmedTemplate = `I can really hear how overwhelmed you're feeling right now. It's like everything is just... too much, too fast, too intense. That's such a hard place to be.

When I'm working with someone who feels this overwhelmed, I always think about putting on the airplane oxygen mask first, you know? We need to get you breathing and grounded before we tackle the bigger stuff.

Right now, in this moment, can you feel your feet on the floor? Can you take one deep breath with me? Sometimes when everything feels chaotic, we need to start really, really small.

What's one thing - just one - that feels manageable today? Maybe it's just getting through the next hour, or making a cup of tea, or even just staying in this conversation with me. We don't need to solve everything today.

You reached out, which means part of you believes things can get better. I believe that too. Let's just focus on right now, together. 🌱`

const exhaustedTemplate = `Oh, I can hear how tired you are. Not just sleepy-tired, but that deep, bone-deep exhaustion that comes from fighting your own brain every day. It's like running a marathon that never ends.

OCD is exhausting. Anxiety is exhausting. Having to constantly battle your own thoughts and urges... of course you're tired. Anyone would be.

I want you to know that this tiredness doesn't mean you're weak or giving up. It means you've been fighting really hard for a really long time. That takes incredible strength, even when it doesn't feel like it.

Sometimes when we're this tired, the idea of "getting better" feels overwhelming because it sounds like more work. But here's what I've learned: the right kind of help actually gives you energy back. It's like finally having someone help you carry the heavy backpack you've been lugging around alone.

What would it feel like to have just a little more energy? What would you do with it? Sometimes imagining that can help us remember why the work is worth it. ✨`

const progressTemplate = `Wait, hold on - did you just tell me things are getting better? That's HUGE! 🎉

I know it might not feel huge to you, especially if the progress feels slow or inconsistent, but I need you to really hear this: any movement toward feeling better when you're dealing with OCD and anxiety is significant. Your brain is literally rewiring itself.

Tell me more about this progress. What's different? What are you doing that's helping? I want to understand so we can build on it.

And can I just say - I love that you're noticing the improvement. Sometimes we get so focused on what's still hard that we miss the wins. The fact that you can see progress tells me you're developing some really healthy perspective.

You should be proud of yourself. Seriously. Recovery isn't a straight line, and every step forward matters, even the tiny ones. What feels most different for you right now? 🌟`

// TechnicalDifficulty replaces a reply that could not be produced.
const TechnicalDifficulty = `I'm so sorry - I'm having some technical difficulties right now. This is frustrating, I know, especially when you're reaching out for support.

If this is urgent, please don't hesitate to contact:
• 988 - National Suicide Prevention Lifeline
• Text HOME to 741741
• Your local emergency services

I should be back up and running in just a moment. Thank you for your patience. 💙`
