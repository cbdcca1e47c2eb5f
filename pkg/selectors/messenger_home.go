package selectors

import (
	"fmt"
	"strconv"

	"github.com/devicelab-dev/messenger-pages/pkg/locator"
)

// Android resource ids on the messenger home screen.
const (
	idDisplayName       = "com.tigertext:id/display_name"
	idUnreadPillBadge   = "com.tigertext:id/unread_pill_badge"
	idOrgUnreadBadge    = "com.tigertext:id/new_message_org_unread_badge"
	idLongPressLabel    = "com.tigertext:id/longPressLabel"
	idCallerIDOK        = "com.tigertext:id/ok_button"
	idCallerIDNegative  = "com.tigertext:id/negative_button"
	idNotificationText  = "android:id/text"
	idConversationTitle = "com.tigertext:id/conversation_details_toolbar"
)

// Messenger home descriptor names.
const (
	NameConversationTile               = "conversationTile"
	NameBadgeCount                     = "badgeCount"
	NameEscalationTile                 = "escalationTile"
	NameTigerPageMsgTile               = "tigerPageMsgTile"
	NameForwardGroupTile               = "forwardGroupTile"
	NameMuteConversation               = "muteConversation"
	NameConversationTileText           = "conversationTileText"
	NameConversationTileTextP2P        = "conversationTileTextP2P"
	NameConversationTileContainsText   = "conversationTileContainsText"
	NamePhotoTakenElement              = "photoTakenElement"
	NamePatientConversationTile        = "patientConversationTile"
	NamePatientConversationBroadcast   = "patientConversationTileBroadcast"
	NameConversationTileMessage        = "conversationTileDisplayedMessage"
	NameSettingsIcon                   = "settingsIcon"
	NameCancelSearch                   = "cancelSearch"
	NameUnreadBadgeCountMsgPill        = "unreadBadgeCountMsgPill"
	NameRoleAutoForwardText            = "roleAutoForwardText"
	NameUnreadCountByTile              = "unreadCountByTile"
	NameUnreadCountByTilePatient       = "unreadCountByTilePatient"
	NameUnreadCountP2P                 = "unreadCountP2P"
	NameRoleTileUnreadMessageCount     = "roleConversationTileUnreadMessageCount"
	NameLongPressCallButton            = "longPressConversationFloatingMenuCallButton"
	NameEnableCallerIDOKButton         = "enableCallerIdOkButton"
	NameDenyCallerIDButton             = "negativeToCallerIdAlert"
	NameRolesIcon                      = "rolesIcon"
	NameOnDutyBanner                   = "onDutyBanner"
	NameNetworkSwitchUnreadBadge       = "networkSwitchUnreadBadge"
	NameOrgDropDownUnreadBadgeCount    = "orgDropDownUnreadBadgeCount"
	NamePatientTileName                = "patientTileName"
	NameLongPressMarkAllAsRead         = "longPressMarkAllAsReadButton"
	NamePatientTab                     = "patientTabs"
	NameScheduledMessageTileName       = "scheduledMessageTileDisplayName"
	NameScheduledMsgDisplayName        = "scheduledMsgDisplayName"
	NameMsgScheduledText               = "msgScheduledText"
	NameSuccessPopup                   = "successPopup"
	NameScheduledMessageStatus         = "scheduledMessageStatus"
	NameRepeatMsgOption                = "repeatMsgOption"
	NameRepeatMessageTileName          = "repeatMessageTileDisplayName"
	NameLongPressDeleteButton          = "longPressDeleteButton"
	NameCancelDeleteButton             = "cancelDeleteBtn"
	NameYesDeleteButton                = "yesDeleteBtn"
	NameMsgTileTitle                   = "msgTileTitle"
	NameScheduledMessageTabPill        = "scheduledMessageTabPills"
	NameMemberCountText                = "memberCountText"
	NamePatientInfoDetails             = "patientInfoDetails"
	NameForumElement                   = "forumElement"
	NameUserPresence                   = "userPresence"
	NameGroupName                      = "groupName"
	NameGroupConversationPreview       = "groupConversationPreview"
	NameDeliveredSentMessageStatus     = "deliveredSentMessageStatus"
	NameOnDutyTextFromSettings         = "onDutyTextFromSettings"
	NameConversationDetails            = "conversationDetails"
	NameConversationSettings           = "conversationSettings"
	NameGoBackFromConversationSettings = "goBackFromConversationSettings"
	NameCloseConversation              = "closeConversation"
	NameMessengerPageBadgeCount        = "messengerPageBadgeCount"
	NameMessageContent                 = "messageContent"
	NameSendingAsRoleText              = "sendingAsRoleText"
	NameAppNotification                = "appNotification"
)

// Descriptor constructors.

func ConversationTile(userName string) Descriptor { return D(NameConversationTile, userName) }
func BadgeCount(count string) Descriptor          { return D(NameBadgeCount, count) }
func EscalationTile(escID string) Descriptor      { return D(NameEscalationTile, escID) }
func TigerPageMsgTile(userName string) Descriptor { return D(NameTigerPageMsgTile, userName) }
func ForwardGroupTile(userName string) Descriptor { return D(NameForwardGroupTile, userName) }
func MuteConversation() Descriptor                { return D(NameMuteConversation) }
func ConversationTileText(text string) Descriptor { return D(NameConversationTileText, text) }
func ConversationTileTextP2P(text string) Descriptor {
	return D(NameConversationTileTextP2P, text)
}
func ConversationTileContainsText(text string) Descriptor {
	return D(NameConversationTileContainsText, text)
}
func PhotoTakenElement() Descriptor { return D(NamePhotoTakenElement) }
func PatientConversationTile(userName string) Descriptor {
	return D(NamePatientConversationTile, userName)
}
func PatientConversationTileBroadcast(userName string) Descriptor {
	return D(NamePatientConversationBroadcast, userName)
}
func ConversationTileDisplayedMessage(message string) Descriptor {
	return D(NameConversationTileMessage, message)
}
func SettingsIcon(userFirstName string) Descriptor { return D(NameSettingsIcon, userFirstName) }
func CancelSearch() Descriptor                     { return D(NameCancelSearch) }
func UnreadBadgeCountMsgPill(count string) Descriptor {
	return D(NameUnreadBadgeCountMsgPill, count)
}
func RoleAutoForwardText(userName string) Descriptor { return D(NameRoleAutoForwardText, userName) }
func UnreadCountByTile(tileName string) Descriptor   { return D(NameUnreadCountByTile, tileName) }
func UnreadCountByTilePatient(patient, badgeCount string) Descriptor {
	return D(NameUnreadCountByTilePatient, patient, badgeCount)
}
func UnreadCountP2P(tileName string) Descriptor { return D(NameUnreadCountP2P, tileName) }
func RoleConversationTileUnreadMessageCount(userName, roleName, count string) Descriptor {
	return D(NameRoleTileUnreadMessageCount, userName, roleName, count)
}
func LongPressCallButton(contactName string) Descriptor {
	return D(NameLongPressCallButton, contactName)
}
func EnableCallerIDOKButton() Descriptor { return D(NameEnableCallerIDOKButton) }
func DenyCallerIDButton() Descriptor     { return D(NameDenyCallerIDButton) }
func RolesIcon() Descriptor              { return D(NameRolesIcon) }
func OnDutyBanner() Descriptor           { return D(NameOnDutyBanner) }
func NetworkSwitchUnreadBadge(count string) Descriptor {
	return D(NameNetworkSwitchUnreadBadge, count)
}
func OrgDropDownUnreadBadgeCount(orgName, count string) Descriptor {
	return D(NameOrgDropDownUnreadBadgeCount, orgName, count)
}
func PatientTileName(patientName string) Descriptor { return D(NamePatientTileName, patientName) }
func LongPressMarkAllAsRead() Descriptor            { return D(NameLongPressMarkAllAsRead) }
func PatientTab(tabName string) Descriptor          { return D(NamePatientTab, tabName) }
func ScheduledMessageTileDisplayName(displayName string) Descriptor {
	return D(NameScheduledMessageTileName, displayName)
}
func ScheduledMsgDisplayName(displayName string) Descriptor {
	return D(NameScheduledMsgDisplayName, displayName)
}
func MsgScheduledText() Descriptor { return D(NameMsgScheduledText) }
func SuccessPopup() Descriptor     { return D(NameSuccessPopup) }
func ScheduledMessageStatus(displayName, status string) Descriptor {
	return D(NameScheduledMessageStatus, displayName, status)
}
func RepeatMsgOption(occurrence string) Descriptor { return D(NameRepeatMsgOption, occurrence) }
func RepeatMessageTileDisplayName(displayName, occurrence string) Descriptor {
	return D(NameRepeatMessageTileName, displayName, occurrence)
}
func LongPressDeleteButton() Descriptor    { return D(NameLongPressDeleteButton) }
func CancelDeleteButton() Descriptor       { return D(NameCancelDeleteButton) }
func YesDeleteButton() Descriptor          { return D(NameYesDeleteButton) }
func MsgTileTitle(title string) Descriptor { return D(NameMsgTileTitle, title) }
func ScheduledMessageTabPill(pill string) Descriptor {
	return D(NameScheduledMessageTabPill, pill)
}
func MemberCountText(count string) Descriptor      { return D(NameMemberCountText, count) }
func PatientInfoDetails(patient string) Descriptor { return D(NamePatientInfoDetails, patient) }
func ForumElement(forumName string) Descriptor     { return D(NameForumElement, forumName) }
func UserPresence(presence string) Descriptor      { return D(NameUserPresence, presence) }
func GroupName(groupName string) Descriptor        { return D(NameGroupName, groupName) }
func GroupConversationPreview(groupName, message string) Descriptor {
	return D(NameGroupConversationPreview, groupName, message)
}
func DeliveredSentMessageStatus(roleName, message string) Descriptor {
	return D(NameDeliveredSentMessageStatus, roleName, message)
}
func OnDutyTextFromSettings(roleName string) Descriptor {
	return D(NameOnDutyTextFromSettings, roleName)
}
func ConversationDetails() Descriptor            { return D(NameConversationDetails) }
func ConversationSettings() Descriptor           { return D(NameConversationSettings) }
func GoBackFromConversationSettings() Descriptor { return D(NameGoBackFromConversationSettings) }
func CloseConversation() Descriptor              { return D(NameCloseConversation) }
func MessengerPageBadgeCount(count string) Descriptor {
	return D(NameMessengerPageBadgeCount, count)
}
func MessageContent(message string) Descriptor { return D(NameMessageContent, message) }
func SendingAsRoleText(roleName string) Descriptor {
	return D(NameSendingAsRoleText, roleName)
}
func AppNotification(text string) Descriptor { return D(NameAppNotification, text) }

func xpath(format string, args ...interface{}) locator.Locator {
	return locator.New(locator.XPath, fmt.Sprintf(format, args...))
}

func accessibility(format string, args ...interface{}) locator.Locator {
	return locator.New(locator.AccessibilityID, fmt.Sprintf(format, args...))
}

// registerMessengerHome adds the messenger home screen elements.
func registerMessengerHome(r *Registry) {
	r.Add(NameConversationTile,
		One(func(user string) locator.Locator {
			return locator.TextContainsAndResourceIDAndroid(user, idDisplayName)
		}),
		One(locator.ContainsNameIOS))
	r.Add(NameBadgeCount,
		One(locator.TextContainsAndroid),
		One(func(count string) locator.Locator { return locator.NameValueIOS("Messages", count) }))
	r.Add(NameEscalationTile,
		One(locator.TextContainsAndroid),
		One(locator.PredicateLabelContainsIOS))
	r.Add(NameTigerPageMsgTile,
		One(locator.TextContainsAndroid),
		One(locator.PredicateLabelContainsIOS))
	r.Add(NameForwardGroupTile,
		One(locator.TextContainsAndroid),
		One(locator.PredicateLabelContainsIOS))
	r.Add(NameMuteConversation,
		Fixed(locator.TextAndroid("Mute")),
		Fixed(locator.PredicateLabelIOS("Mute")))
	r.Add(NameConversationTileText,
		One(locator.TextAndroid),
		One(locator.PredicateLabelIOS))
	r.Add(NameConversationTileTextP2P,
		One(locator.TextAndroid),
		One(func(text string) locator.Locator { return locator.PredicateLabelIOS(text + ",P2P Message") }))
	r.Add(NameConversationTileContainsText,
		One(locator.TextContainsAndroid),
		One(locator.PredicateLabelContainsIOS))
	r.AddAndroid(NamePhotoTakenElement, Fixed(locator.TextContainsAndroid("_tempimage.jpeg")))
	r.Add(NamePatientConversationTile,
		One(locator.TextContainsAndroid),
		One(locator.PredicateLabelContainsIOS))
	r.Add(NamePatientConversationBroadcast,
		One(locator.TextContainsAndroid),
		One(locator.StaticTextValueIOS))
	r.Add(NameConversationTileMessage,
		One(locator.TextContainsAndroid),
		One(locator.StaticTextContainsIOS))
	r.Add(NameSettingsIcon,
		One(func(string) locator.Locator { return locator.MustParse("~Settings") }),
		One(func(firstName string) locator.Locator { return accessibility("Hi, %s!", firstName) }))
	r.Add(NameCancelSearch,
		Literal("//*[@resource-id='com.tigertext:id/clearText']"),
		Literal("~Cancel"))
	r.Add(NameUnreadBadgeCountMsgPill,
		One(func(count string) locator.Locator { return locator.TextAndResourceIDAndroid(count, idUnreadPillBadge) }),
		One(func(count string) locator.Locator { return locator.NameValueIOS("Messages", count) }))
	r.Add(NameRoleAutoForwardText,
		One(func(user string) locator.Locator { return locator.TextContainsAndroid("Auto-forwarding to: " + user) }),
		One(func(string) locator.Locator { return locator.LabelIOS("Auto-forwarding to: ") }))
	r.Add(NameUnreadCountByTile,
		One(func(tile string) locator.Locator {
			return xpath(`//android.view.ViewGroup[@content-desc="%s"]//android.widget.TextView[@resource-id="%s"]`, tile, idOrgUnreadBadge)
		}),
		One(func(tile string) locator.Locator {
			return xpath(`//XCUIElementTypeCell[contains(@name,"%s")]//XCUIElementTypeStaticText[contains(@name, "Unread Messages")]`, tile)
		}))
	r.Add(NameUnreadCountByTilePatient,
		Two(func(patient, _ string) locator.Locator {
			return locator.ContainsContentDescAndResourceIDAndroid(patient+" (Patient)", idOrgUnreadBadge)
		}),
		Two(func(_, badge string) locator.Locator { return locator.TypeOtherIOS(badge) }))
	r.Add(NameUnreadCountP2P,
		One(func(string) locator.Locator { return locator.ResourceIDAndroid(idOrgUnreadBadge) }),
		One(func(tile string) locator.Locator { return accessibility("%s, P2P Message, unread", tile) }))
	r.Add(NameRoleTileUnreadMessageCount,
		Three(func(user, role, count string) locator.Locator {
			return xpath(`//android.widget.TextView[@resource-id="com.tigertext:id/tvRole"] [@text="%s"]`+
				`//parent::android.view.ViewGroup[@resource-id="com.tigertext:id/inbox_row_container"] [@content-desc="%s"]`+
				`//android.widget.TextView[@resource-id="%s"][@text="%s"]`, role, user, idOrgUnreadBadge, count)
		}),
		Three(func(user, role, count string) locator.Locator {
			return xpath(`//XCUIElementTypeStaticText[@name="sender_role_name"] [@value="%s"]`+
				`//parent::XCUIElementTypeCell[contains(@name, "%s")]//XCUIElementTypeStaticText[@name="%s Unread Messages"]`, role, user, count)
		}))
	r.Add(NameLongPressCallButton,
		One(func(string) locator.Locator { return locator.ResourceIDAndroid(idLongPressLabel) }),
		One(func(contact string) locator.Locator {
			return xpath(`//*[contains(@label, "%s")]/XCUIElementTypeButton[2]`, contact)
		}))
	r.AddAndroid(NameEnableCallerIDOKButton, Fixed(locator.ResourceIDAndroid(idCallerIDOK)))
	r.AddAndroid(NameDenyCallerIDButton, Fixed(locator.ResourceIDAndroid(idCallerIDNegative)))
	r.AddIOS(NameRolesIcon, Literal(`[name="Roles Tab"]`))
	r.Add(NameOnDutyBanner,
		Literal(`//android.widget.TextView[contains(@text,"You're On Duty:")]`),
		Literal(`//XCUIElementTypeStaticText[contains(@name,"You're On Duty:")]`))
	r.Add(NameNetworkSwitchUnreadBadge,
		One(locator.TextAndroid),
		One(func(count string) locator.Locator { return locator.StaticTextIndexIOS(count+" Unread Messages", 1) }))
	r.Add(NameOrgDropDownUnreadBadgeCount,
		Two(func(_, count string) locator.Locator { return locator.TextAndroid(count) }),
		Two(func(org, count string) locator.Locator { return locator.LabelIOS(org + ", " + count) }))
	r.AddIOS(NamePatientTileName, One(func(patient string) locator.Locator {
		return xpath(`//XCUIElementTypeStaticText[contains(@name,"%s")]`, patient)
	}))
	r.AddAndroid(NameLongPressMarkAllAsRead,
		Literal(`//*[@resource-id="com.tigertext:id/longPressLabel" and contains(@text, "Mark all as Read")]`))
	r.Add(NamePatientTab,
		One(func(tab string) locator.Locator {
			if tab == "Inbox Tab" {
				tab = "Inbox"
			}
			return locator.ContentDescAndroid(tab)
		}),
		One(func(tab string) locator.Locator { return locator.ButtonByValueIOS(tab + " Tab") }))
	r.Add(NameScheduledMessageTileName,
		One(func(name string) locator.Locator { return locator.TextAndResourceIDAndroid(name, idDisplayName) }),
		One(locator.StaticTextValueContainsIOS))
	r.Add(NameScheduledMsgDisplayName,
		One(locator.TextAndroid),
		One(locator.StaticTextValueContainsIOS))
	r.Add(NameMsgScheduledText,
		Fixed(locator.TextAndroid("Scheduled")),
		Fixed(locator.PredicateLabelIOS("Scheduled")))
	r.Add(NameSuccessPopup,
		Fixed(locator.TextContainsAndroid("Success")),
		Fixed(locator.NameIOS("Success Pop-up")))
	r.Add(NameScheduledMessageStatus,
		Two(func(name, status string) locator.Locator {
			return xpath(`//*[@resource-id = "%s" and @text = "%s"]/following-sibling::*[@text = "%s"]`, idDisplayName, name, status)
		}),
		Two(func(name, status string) locator.Locator {
			return xpath(`//XCUIElementTypeCell[contains(@name,"%s") and contains(@name, "%s")]`, status, name)
		}))
	r.Add(NameRepeatMsgOption,
		One(func(occurrence string) locator.Locator { return locator.TextContainsAndroid(occurrence + " Until ") }),
		One(locator.StaticTextContainsIOS))
	r.Add(NameRepeatMessageTileName,
		Two(func(name, occurrence string) locator.Locator {
			return xpath(`//*[@resource-id = "%s" and @text = '%s']/following-sibling::*[@resource-id = "com.tigertext:id/message_occurrence" and contains(@text, '%s')]`,
				idDisplayName, name, occurrence)
		}),
		Two(func(name, occurrence string) locator.Locator {
			return xpath(`//XCUIElementTypeCell[contains(@name,"%s") and contains(@name, "%s")]`, occurrence, name)
		}))
	r.Add(NameLongPressDeleteButton,
		Fixed(locator.TextAndroid("Delete")),
		Fixed(locator.PredicateLabelIOS("Delete")))
	r.Add(NameCancelDeleteButton,
		Fixed(locator.TextAndroid("Cancel")),
		Fixed(locator.PredicateLabelIOS("Cancel")))
	r.Add(NameYesDeleteButton,
		Fixed(locator.TextAndroid("Yes")),
		Fixed(locator.PredicateLabelIOS("Yes")))
	r.Add(NameMsgTileTitle,
		One(locator.TextAndroid),
		One(func(title string) locator.Locator { return locator.PredicateLabelContainsIOS(title + ",") }))
	r.Add(NameScheduledMessageTabPill,
		One(locator.TextContainsAndroid),
		One(locator.PredicateLabelContainsIOS))
	r.Add(NameMemberCountText,
		One(func(count string) locator.Locator { return locator.TextAndroid(count + " Members") }),
		One(func(count string) locator.Locator { return locator.PredicateLabelIOS(count + " Members") }))
	r.Add(NamePatientInfoDetails,
		One(func(patient string) locator.Locator {
			return xpath(`//*[@resource-id ="%s" and @text ="%s"]/following-sibling::*[@resource-id ="com.tigertext:id/patient_info"]`, idDisplayName, patient)
		}),
		One(func(patient string) locator.Locator {
			return xpath(`//XCUIElementTypeStaticText[@name="%s"]/following-sibling::*[contains(@name, "|")]`, patient)
		}))
	r.Add(NameForumElement,
		One(func(forum string) locator.Locator {
			return xpath(`(//android.view.ViewGroup[@content-desc="%s"])[1]/android.widget.TextView[2]`, forum)
		}),
		One(func(forum string) locator.Locator {
			return xpath(`//XCUIElementTypeCell[contains(@name, "%s")]`, forum)
		}))
	r.Add(NameUserPresence,
		One(func(presence string) locator.Locator { return xpath(`//*[@content-desc="%s"]`, presence) }),
		One(func(presence string) locator.Locator { return xpath(`//*[@name="%s"]`, presence) }))
	r.Add(NameGroupName,
		One(func(group string) locator.Locator {
			return xpath(`//android.view.ViewGroup[contains(@content-desc, "%s")]`, group)
		}),
		One(func(group string) locator.Locator { return xpath(`//XCUIElementTypeCell[contains(@name,"%s")]`, group) }))
	r.AddAndroid(NameGroupConversationPreview, Two(func(group, message string) locator.Locator {
		return xpath(`//android.widget.TextView[contains(@text, "%s")]//following-sibling::*[contains(@text,'%s')]`, group, message)
	}))
	r.Add(NameDeliveredSentMessageStatus,
		Two(func(role, message string) locator.Locator {
			return xpath(`//*[@text="%s"]//following-sibling::*[@text="%s"]`, role, message)
		}),
		Two(func(role, message string) locator.Locator {
			return xpath(`//XCUIElementTypeStaticText[contains(@value,'%s')]//ancestor::XCUIElementTypeOther//XCUIElementTypeStaticText[@name='%s']`, role, message)
		}))
	r.AddAndroid(NameOnDutyTextFromSettings, One(func(role string) locator.Locator {
		return xpath(`//*[@text="%s"]//following-sibling::*[@text="You're On Duty"]`, role)
	}))
	r.AddAndroid(NameConversationDetails, Literal(`//android.widget.ImageView[@content-desc="More options"]`))
	r.AddAndroid(NameConversationSettings, Literal(`//*[@text="Settings"]`))
	r.AddAndroid(NameGoBackFromConversationSettings, Fixed(xpath(
		`//*[@resource-id ="%s"]//child::*[@class="android.widget.ImageButton"]`, idConversationTitle)))
	r.Add(NameCloseConversation,
		Fixed(locator.ContentDescAndroid("Back")),
		Literal("~back-button"))
	r.AddAndroid(NameMessengerPageBadgeCount, One(func(count string) locator.Locator {
		return xpath(`//*[@text='Messages']/following-sibling::*[@text='%s']`, count)
	}))
	r.Add(NameMessageContent,
		One(func(message string) locator.Locator { return xpath(`//*[@text='%s']`, message) }),
		One(locator.NameIOS))
	r.Add(NameSendingAsRoleText,
		One(func(role string) locator.Locator { return xpath(`//*[@text='Sending as: %s']`, role) }),
		One(func(role string) locator.Locator { return locator.NameIOS("Sending as: " + role) }))
	r.Add(NameAppNotification,
		One(func(text string) locator.Locator { return locator.TextAndResourceIDAndroid(text, idNotificationText) }),
		One(locator.StaticTextContainsIOS))
}

// Count formats a badge count parameter.
func Count(n int) string {
	return strconv.Itoa(n)
}
