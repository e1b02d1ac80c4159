package page

// Home page and product popup
const (
	WelcomeBannerClose Element = "home.welcome_banner_close"
	CookieDismiss      Element = "home.cookie_dismiss"
	PaginatorRange     Element = "home.paginator_range"
	ItemsPerPage       Element = "home.items_per_page"
	ItemsPerPageOption Element = "home.items_per_page_option"
	ProductCard        Element = "home.product_card"
	ProductTile        Element = "home.product_tile"
	ProductImage       Element = "home.product_image"
	ProductPopup       Element = "home.product_popup"
	PopupImage         Element = "home.popup_image"
	ReviewsTitle       Element = "home.reviews_title"
	ReviewsPanel       Element = "home.reviews_panel"
	ReviewsExpanded    Element = "home.reviews_expanded"
	ClosePopup         Element = "home.close_popup"
)

// Account menu, registration and login
const (
	AccountMenu            Element = "account.menu"
	LoginMenuItem          Element = "account.login_menu_item"
	NotYetCustomer         Element = "account.not_yet_customer"
	RegistrationEmail      Element = "account.registration_email"
	RegistrationPassword   Element = "account.registration_password"
	RegistrationRepeat     Element = "account.registration_repeat_password"
	SecurityQuestion       Element = "account.security_question"
	SecurityQuestionOption Element = "account.security_question_option"
	SecurityAnswer         Element = "account.security_answer"
	RegisterButton         Element = "account.register_button"
	PasswordAdviceToggle   Element = "account.password_advice_toggle"
	PasswordAdvice         Element = "account.password_advice"
	ValidationError        Element = "account.validation_error"
	RegistrationSuccess    Element = "account.registration_success"
	LoginEmail             Element = "account.login_email"
	LoginPassword          Element = "account.login_password"
	LoginButton            Element = "account.login_button"
	LogoutButton           Element = "account.logout_button"
)

// Catalog and basket
const (
	ProductPrice   Element = "basket.product_price"
	AddToBasket    Element = "basket.add_to_basket"
	BasketAck      Element = "basket.added_ack"
	BasketCount    Element = "basket.count_badge"
	BasketNav      Element = "basket.nav"
	BasketRow      Element = "basket.row"
	BasketRowName  Element = "basket.row_name"
	BasketRowPrice Element = "basket.row_price"
	RowQuantity    Element = "basket.row_quantity"
	RowIncrement   Element = "basket.row_increment"
	RowDelete      Element = "basket.row_delete"
	BasketTotal    Element = "basket.total"
	CheckoutButton Element = "basket.checkout"
)

// Checkout funnel
const (
	AddAddress       Element = "checkout.add_address"
	AddressCountry   Element = "checkout.address_country"
	AddressName      Element = "checkout.address_name"
	AddressMobile    Element = "checkout.address_mobile"
	AddressZIP       Element = "checkout.address_zip"
	AddressStreet    Element = "checkout.address_street"
	AddressCity      Element = "checkout.address_city"
	AddressState     Element = "checkout.address_state"
	FormSubmit       Element = "checkout.form_submit"
	AddressRadio     Element = "checkout.address_radio"
	AddressContinue  Element = "checkout.address_continue"
	DeliveryRadio    Element = "checkout.delivery_radio"
	DeliveryContinue Element = "checkout.delivery_continue"
	WalletBalance    Element = "checkout.wallet_balance"
	AddCardPanel     Element = "checkout.add_card_panel"
	CardName         Element = "checkout.card_name"
	CardNumber       Element = "checkout.card_number"
	CardExpiryMonth  Element = "checkout.card_expiry_month"
	CardExpiryYear   Element = "checkout.card_expiry_year"
	CardRadio        Element = "checkout.card_radio"
	PaymentContinue  Element = "checkout.payment_continue"
	SummaryTotal     Element = "checkout.summary_total"
	PlaceOrder       Element = "checkout.place_order"
	ThankYou         Element = "checkout.thank_you"
)

// URL patterns waited on after navigation
const (
	BasketURL          = "**/basket"
	LoginURL           = "**/login"
	OrderCompletionURL = "**/order-completion/**"
)

// JuiceShopSelectors returns the selector table for the Juice Shop markup.
// The storefront fixture renders the same markup.
func JuiceShopSelectors() Selectors {
	return Selectors{
		WelcomeBannerClose: {CSS: `button[aria-label="Close Welcome Banner"]`},
		CookieDismiss:      {CSS: `a[aria-label="dismiss cookie message"]`},
		PaginatorRange:     {CSS: `.mat-paginator-range-label`},
		ItemsPerPage:       {CSS: `[role="combobox"][aria-label="Items per page:"]`},
		ItemsPerPageOption: {CSS: `mat-option .mat-option-text`},
		ProductCard:        {CSS: `.mat-card`},
		ProductTile:        {CSS: `div.mat-tooltip-trigger`},
		ProductImage:       {Scope: `.mat-card`, CSS: `img.mat-card-image`},
		ProductPopup:       {CSS: `mat-dialog-content`},
		PopupImage:         {Scope: `mat-dialog-content`, CSS: `img`},
		ReviewsTitle:       {CSS: `mat-panel-title`, HasText: "Reviews"},
		ReviewsPanel:       {CSS: `mat-expansion-panel-header`, HasText: "Reviews"},
		ReviewsExpanded:    {CSS: `.mat-expanded`},
		ClosePopup:         {CSS: `button[aria-label="Close Dialog"]`},

		AccountMenu:            {CSS: `button[aria-label="Show/hide account menu"]`},
		LoginMenuItem:          {CSS: `button[aria-label="Go to login page"]`},
		NotYetCustomer:         {CSS: `a`, HasText: "Not yet a customer?"},
		RegistrationEmail:      {CSS: `#emailControl`},
		RegistrationPassword:   {CSS: `#passwordControl`},
		RegistrationRepeat:     {CSS: `#repeatPasswordControl`},
		SecurityQuestion:       {CSS: `mat-select[name="securityQuestion"]`},
		SecurityQuestionOption: {CSS: `mat-option`},
		SecurityAnswer:         {CSS: `#securityAnswerControl`},
		RegisterButton:         {CSS: `#registerButton`},
		PasswordAdviceToggle:   {CSS: `.mat-slide-toggle-bar input[type="checkbox"]`},
		PasswordAdvice:         {CSS: `mat-password-strength-info .info-row`},
		ValidationError:        {CSS: `mat-error`},
		RegistrationSuccess:    {CSS: `.mat-simple-snackbar`, HasText: "Registration completed successfully"},
		LoginEmail:             {CSS: `#email`},
		LoginPassword:          {CSS: `#password`},
		LoginButton:            {CSS: `#loginButton`},
		LogoutButton:           {CSS: `#navbarLogoutButton`},

		ProductPrice:   {Scope: `.mat-card`, CSS: `.item-price`},
		AddToBasket:    {Scope: `.mat-card`, CSS: `button[aria-label="Add to Basket"]`},
		BasketAck:      {CSS: `.mat-simple-snackbar`},
		BasketCount:    {CSS: `span.fa-layers-counter`},
		BasketNav:      {CSS: `button[aria-label="Show the shopping cart"]`},
		BasketRow:      {CSS: `.mat-row`},
		BasketRowName:  {CSS: `.mat-row .mat-column-product`},
		BasketRowPrice: {CSS: `.mat-row .mat-column-price`},
		RowQuantity:    {Scope: `.mat-row`, CSS: `.mat-column-quantity span`},
		RowIncrement:   {Scope: `.mat-row`, CSS: `button:has([data-icon="plus-square"])`},
		RowDelete:      {Scope: `.mat-row`, CSS: `button:has([data-icon="trash-alt"])`},
		BasketTotal:    {CSS: `#price`},
		CheckoutButton: {CSS: `#checkoutButton`},

		AddAddress:       {CSS: `button[aria-label="Add a new address"]`},
		AddressCountry:   {CSS: `input[placeholder="Please provide a country."]`},
		AddressName:      {CSS: `input[placeholder="Please provide a name."]`},
		AddressMobile:    {CSS: `input[placeholder="Please provide a mobile number."]`},
		AddressZIP:       {CSS: `input[placeholder="Please provide a ZIP code."]`},
		AddressStreet:    {CSS: `textarea#address`},
		AddressCity:      {CSS: `input[placeholder="Please provide a city."]`},
		AddressState:     {CSS: `input[placeholder="Please provide a state."]`},
		FormSubmit:       {CSS: `#submitButton`},
		AddressRadio:     {Scope: `.mat-row`, CSS: `input[type="radio"]`},
		AddressContinue:  {CSS: `button[aria-label="Proceed to delivery method selection"]`},
		DeliveryRadio:    {Scope: `.mat-row`, CSS: `input[type="radio"]`},
		DeliveryContinue: {CSS: `button[aria-label="Proceed to payment selection"]`},
		WalletBalance:    {CSS: `.wallet-balance`},
		AddCardPanel:     {CSS: `.mat-expansion-panel-header`, HasText: "Add new card"},
		CardName:         {CSS: `input[name="cardName"]`},
		CardNumber:       {CSS: `input[name="cardNumber"]`},
		CardExpiryMonth:  {CSS: `select[name="expiryMonth"]`},
		CardExpiryYear:   {CSS: `select[name="expiryYear"]`},
		CardRadio:        {Scope: `.mat-row`, CSS: `input[type="radio"]`},
		PaymentContinue:  {CSS: `button[aria-label="Proceed to review"]`},
		SummaryTotal:     {Scope: `tr`, CSS: `td.price`, HasText: "Total Price"},
		PlaceOrder:       {CSS: `#checkoutButton`},
		ThankYou:         {CSS: `h1.confirmation`, HasText: "Thank you for your purchase!"},
	}
}
