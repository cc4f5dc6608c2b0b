package shield

// canonical examples added to single-class sets
var (
	canonicalHam = []Sample{
		{Text: "Hello, how are you?", Label: Ham},
		{Text: "Thanks for your message", Label: Ham},
		{Text: "Meeting tomorrow at 10am", Label: Ham},
	}
	canonicalSpam = []Sample{
		{Text: "Win a free iPhone!", Label: Spam},
		{Text: "Your account needs verification", Label: Spam},
		{Text: "Click here to claim prize", Label: Spam},
	}
)

// minimalExamples used to build the last resort model when training fails
var minimalExamples = []Sample{
	{Text: "win free money now", Label: Spam},
	{Text: "verify your account immediately", Label: Spam},
	{Text: "click this link to claim prize", Label: Spam},
	{Text: "hello how are you doing", Label: Ham},
	{Text: "meeting tomorrow at 10am", Label: Ham},
	{Text: "thanks for your email", Label: Ham},
}

// syntheticSet is the emergency set used when no example sets are available
func syntheticSet() ExampleSet {
	return ExampleSet{
		Platform:  SyntheticPlatform,
		Synthetic: true,
		Samples: []Sample{
			{Text: "WINNER!! You've been selected for a free $1000 gift card. Text YES to claim!", Label: Spam},
			{Text: "Urgent: Your bank account needs verification. Click http://bad-link.com to secure your account.", Label: Spam},
			{Text: "You've won a prize! Claim your iPhone now at http://free-iphone.com", Label: Spam},
			{Text: "Hi, are we still meeting tomorrow at 5pm?", Label: Ham},
			{Text: "Thanks for your message, I'll get back to you soon.", Label: Ham},
			{Text: "Can you send me the report by EOD today?", Label: Ham},
		},
	}
}

// sampleCorpus is written to the data directory for platforms without corpus files
var sampleCorpus = map[string][]Sample{
	"sms": {
		{Text: "WINNER!! You've been selected for a free $1000 gift card. Text YES to claim!", Label: Spam},
		{Text: "Urgent: Your bank account needs verification. Click http://bad-link.com to secure your account.", Label: Spam},
		{Text: "You've won a prize! Claim your iPhone now at http://free-iphone.com", Label: Spam},
		{Text: "Hi, are we still meeting tomorrow at 5pm?", Label: Ham},
		{Text: "Thanks for your message, I'll get back to you soon.", Label: Ham},
		{Text: "Can you send me the report by EOD today?", Label: Ham},
	},
	"email": {
		{Text: "Investment opportunity! Double your money in 24 hours. Limited time offer!", Label: Spam},
		{Text: "Your account has been compromised. Verify your identity at http://secure-login.com", Label: Spam},
		{Text: "Nigerian prince needs your help to transfer $10,000,000. You get 20% commission.", Label: Spam},
		{Text: "Hello, I'm following up on our meeting yesterday.", Label: Ham},
		{Text: "Please find attached the documents you requested.", Label: Ham},
		{Text: "Looking forward to our call tomorrow at 3 PM.", Label: Ham},
	},
	"instagram": {
		{Text: "Get 10k followers in 24 hours! Click the link in bio!", Label: Spam},
		{Text: "You've been tagged in a photo! View it now at http://fake-instagram.com", Label: Spam},
		{Text: "Congratulations! You won our giveaway! DM us to claim your prize.", Label: Spam},
		{Text: "Nice post! 😊", Label: Ham},
		{Text: "Thanks for the follow!", Label: Ham},
		{Text: "Check out my latest post!", Label: Ham},
	},
	"telegram": {
		{Text: "Earn $1000 daily with this simple method! Join our channel now!", Label: Spam},
		{Text: "Your account has suspicious activity. Verify now: http://telegram-verify.com", Label: Spam},
		{Text: "Free crypto signals! Join our premium group for guaranteed profits!", Label: Spam},
		{Text: "Hey, how are you doing?", Label: Ham},
		{Text: "Did you see the message I sent yesterday?", Label: Ham},
		{Text: "Let's schedule a meeting for next week.", Label: Ham},
	},
}
