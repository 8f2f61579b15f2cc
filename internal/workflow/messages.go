package workflow

import (
	"fmt"
	"strings"
	"time"

	"github.com/nhoyhub/esignhub/internal/domain/model"
)

// Static asset URLs for the photos attached to workflow messages.
const (
	startPhotoURL    = "https://i.pinimg.com/736x/dd/cb/03/ddcb0341971d4836da7d12c399149675.jpg"
	paymentPhotoURL  = "https://i.pinimg.com/736x/01/ab/75/01ab75af562098fc4774fdbd222b2132.jpg"
	qrPhotoURL       = "https://i.pinimg.com/736x/14/70/c4/1470c436182cf4c4142bfa343b45c844.jpg"
	successPhotoURL  = "https://i.pinimg.com/736x/da/1f/3b/da1f3b1746d1d05cfa59f371d0310f8a.jpg"
	rejectedPhotoURL = "https://i.pinimg.com/originals/a5/75/0b/a5750babcf0f417f30e0b4773b29e376.gif"
	alertPhotoURL    = "https://i.pinimg.com/736x/eb/41/ca/eb41ca25e4d9bfc312fb81e59440f0ce.jpg"

	udidProfileURL = "https://udid.tech/download-profile"
)

func displayName(username string) string {
	return strings.TrimPrefix(username, "@")
}

func welcomeMessage(username string) Message {
	text := fmt.Sprintf(
		"🎉 Welcome, %s!\n\n"+
			"How to get started:\n"+
			"1. Download the UDID profile with the button below.\n"+
			"2. Install it on your device.\n"+
			"3. Copy your UDID and send it to me.\n"+
			"4. Select a payment plan and send the payment proof.",
		displayName(username),
	)
	return Message{
		Text:     text,
		PhotoURL: startPhotoURL,
		Actions:  [][]Action{{{Label: "📱 Download UDID Profile", URL: udidProfileURL}}},
	}
}

func invalidUDIDMessage() Message {
	return Message{Text: "❌ Invalid UDID format.\n\n" +
		"Please make sure you copied the entire UDID string. " +
		"A valid UDID is 20-50 characters long and contains letters, numbers, and hyphens."}
}

func planPromptMessage(udid string) Message {
	var rows [][]Action
	for _, p := range model.Plans() {
		rows = append(rows, []Action{{Label: p.Label(), ID: PlanAction(p.ID)}})
	}
	text := fmt.Sprintf(
		"✅ UDID received!\n\nYour UDID: <code>%s</code>\n\n💰 Choose your plan below.",
		udid,
	)
	return Message{Text: text, PhotoURL: paymentPhotoURL, ParseMode: "HTML", Actions: rows}
}

func planSelectedText(plan model.Plan) string {
	return fmt.Sprintf("✅ %s selected. Please follow the payment instructions below.", plan.Label())
}

func paymentInstructionsMessage(sess model.Session) Message {
	text := fmt.Sprintf(
		"💳 %s\n\n"+
			"📱 UDID: <code>%s</code>\n\n"+
			"Payment instructions:\n"+
			"1. Scan the QR code below.\n"+
			"2. Make your payment of $%d.\n"+
			"3. Take a screenshot of the payment confirmation.\n"+
			"4. Send the screenshot to this chat.\n\n"+
			"⏰ Please complete payment within 30 minutes.",
		sess.Plan.Label(), sess.UDID, sess.Plan.ID,
	)
	return Message{Text: text, PhotoURL: qrPhotoURL, ParseMode: "HTML"}
}

func startFirstMessage() Message {
	return Message{Text: "❌ Please start the process with /start and select a payment option first."}
}

func alreadyProcessingMessage() Message {
	return Message{Text: "⏳ Your request is already being processed. Please wait for admin approval."}
}

func photoFetchFailedMessage() Message {
	return Message{Text: "❌ Error getting the photo file. Please try sending a different photo."}
}

func orderFailedMessage() Message {
	return Message{Text: "❌ Error: failed to submit your order. Please try again or contact support."}
}

func adminNotifyFailedMessage() Message {
	return Message{Text: "❌ Error sending the approval request. Please try again or contact support."}
}

func processingMessage() Message {
	return Message{Text: "🔄 Processing your payment screenshot...\n\n" +
		"Your request has been submitted to our admin team.\n" +
		"⏰ Please wait for approval (usually within 1-2 hours).\n\n" +
		"✅ You will receive a notification once processed!"}
}

func adminAlertMessage(p model.PendingApproval) Message {
	text := fmt.Sprintf(
		"🔍 NEW APPROVAL REQUEST\n\n"+
			"👤 User: %s\n"+
			"🆔 User ID: %d\n"+
			"📦 Order ID: %d\n"+
			"📱 UDID: %s\n"+
			"💳 Payment Option: %d\n"+
			"⏰ Time: %s\n\n"+
			"Please review and decide:",
		p.Username, p.UserID, p.OrderID, p.UDID, p.Plan.ID,
		p.SubmittedAt.Format(time.DateTime),
	)
	return Message{
		Text: text,
		Actions: [][]Action{
			{
				{Label: "✅ Approve", ID: ApproveAction(p.OrderID)},
				{Label: "❌ Reject", ID: RejectAction(p.OrderID)},
			},
			{
				{Label: "📋 Copy UDID", ID: CopyUDIDAction(p.UserID, p.OrderID)},
			},
		},
	}
}

func approvedMessage(p model.PendingApproval) Message {
	text := fmt.Sprintf(
		"🎉 Thank you, %s! 🎉\n\n"+
			"Your order has been completed.\n\n"+
			"UDID: <code>%s</code>\n"+
			"Price: $%d\n\n"+
			"To start a new order, use /start\n"+
			"To check your completed order, use /details",
		displayName(p.Username), p.UDID, p.Plan.ID,
	)
	return Message{Text: text, PhotoURL: successPhotoURL, ParseMode: "HTML"}
}

func rejectedMessage() Message {
	return Message{
		Text: "❌ Request not approved.\n\n" +
			"Your request has been reviewed and not approved.\n" +
			"You can send a new payment screenshot or contact support.",
		PhotoURL: rejectedPhotoURL,
	}
}

func decidedSummaryText(p model.PendingApproval, approved bool, adminName string) string {
	status := "✅ APPROVED"
	if !approved {
		status = "❌ REJECTED"
	}
	return fmt.Sprintf(
		"🔍 APPROVAL REQUEST - %s by @%s\n\n"+
			"👤 User: %s\n"+
			"🆔 User ID: %d\n"+
			"📦 Order ID: %d\n"+
			"📱 UDID: %s\n"+
			"💳 Payment: $%d\n"+
			"⏰ Submitted: %s",
		status, adminName, p.Username, p.UserID, p.OrderID, p.UDID, p.Plan.ID,
		p.SubmittedAt.Format(time.DateTime),
	)
}

const expiredRequestText = "❌ This request is no longer valid or has already been processed."

func copyUDIDMessage(p model.PendingApproval) Message {
	text := fmt.Sprintf(
		"📋 UDID for user %s:\n\n<code>%s</code>\n\nTap the UDID above to copy it.",
		p.Username, p.UDID,
	)
	return Message{Text: text, ParseMode: "HTML"}
}

func detailsMessage(c model.CompletedOrder) Message {
	text := fmt.Sprintf(
		"📋 Order Details\n\n"+
			"👤 User: %s\n"+
			"🆔 User ID: %d\n"+
			"📦 Order ID: %d\n"+
			"📱 UDID: <code>%s</code>\n"+
			"💳 Payment: $%d\n"+
			"⏰ Completed: %s\n\n"+
			"To place a new order, use /start",
		c.Username, c.UserID, c.OrderID, c.UDID, c.Plan.ID,
		c.CompletedAt.Format(time.DateTime),
	)
	return Message{Text: text, ParseMode: "HTML"}
}

func noDetailsMessage() Message {
	return Message{Text: "❌ No order details found.\n\n" +
		"You don't have any completed orders yet.\n" +
		"Please complete an order first using /start"}
}

func followupMessage() Message {
	return Message{Text: "🥺 Your esign is doing great! Thanks for ordering with us.", PhotoURL: alertPhotoURL}
}
