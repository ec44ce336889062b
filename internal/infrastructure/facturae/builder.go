// Package facturae construye el XML Facturae 3.2.2 de un pedido con factura
// completa. Solo cubre la representación estructural del documento; la firma
// XAdES queda fuera (la exige la Administración, no el comercio).
package facturae

import (
	"fmt"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Tpv-api/internal/domain/entity"
)

const (
	namespaceFE     = "http://www.facturae.es/Facturae/2014/v3.2.1/Facturae"
	schemaVersion   = "3.2.2"
	invoiceSeriesID = "TPV"
)

// SellerParty datos fiscales del comercio emisor. Vienen de configuración.
type SellerParty struct {
	TaxID         string
	CorporateName string
	Address       string
	PostCode      string
	Town          string
	Province      string
}

// Builder genera el XML Facturae de pedidos cerrados.
type Builder struct {
	seller SellerParty
}

// NewBuilder construye el generador con los datos del emisor.
func NewBuilder(seller SellerParty) *Builder {
	return &Builder{seller: seller}
}

// Build serializa el pedido como documento Facturae. El pedido debe llevar
// factura completa: sin identidad del cliente el documento no es válido.
func (b *Builder) Build(order *entity.Order) ([]byte, error) {
	if order.InvoiceType != entity.InvoiceFull {
		return nil, fmt.Errorf("facturae: el pedido %s no es factura completa", order.ID)
	}
	if order.CustomerName == "" || order.CustomerTaxID == "" {
		return nil, fmt.Errorf("facturae: el pedido %s no tiene identidad de cliente", order.ID)
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("fe:Facturae")
	root.CreateAttr("xmlns:fe", namespaceFE)

	b.addHeader(root)
	b.addParties(root, order)
	b.addInvoice(root, order)

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("facturae: serializar XML: %w", err)
	}
	return out, nil
}

func (b *Builder) addHeader(root *etree.Element) {
	header := root.CreateElement("FileHeader")
	header.CreateElement("SchemaVersion").SetText(schemaVersion)
	header.CreateElement("Modality").SetText("I") // individual
	header.CreateElement("InvoiceIssuerType").SetText("EM")
}

func (b *Builder) addParties(root *etree.Element, order *entity.Order) {
	parties := root.CreateElement("Parties")

	seller := parties.CreateElement("SellerParty")
	sellerTax := seller.CreateElement("TaxIdentification")
	sellerTax.CreateElement("PersonTypeCode").SetText("J") // persona jurídica
	sellerTax.CreateElement("TaxIdentificationNumber").SetText(b.seller.TaxID)
	legal := seller.CreateElement("LegalEntity")
	legal.CreateElement("CorporateName").SetText(b.seller.CorporateName)
	addr := legal.CreateElement("AddressInSpain")
	addr.CreateElement("Address").SetText(b.seller.Address)
	addr.CreateElement("PostCode").SetText(b.seller.PostCode)
	addr.CreateElement("Town").SetText(b.seller.Town)
	addr.CreateElement("Province").SetText(b.seller.Province)
	addr.CreateElement("CountryCode").SetText("ESP")

	buyer := parties.CreateElement("BuyerParty")
	buyerTax := buyer.CreateElement("TaxIdentification")
	buyerTax.CreateElement("PersonTypeCode").SetText("F") // persona física
	buyerTax.CreateElement("TaxIdentificationNumber").SetText(order.CustomerTaxID)
	individual := buyer.CreateElement("Individual")
	individual.CreateElement("Name").SetText(order.CustomerName)
}

func (b *Builder) addInvoice(root *etree.Element, order *entity.Order) {
	invoices := root.CreateElement("Invoices")
	invoice := invoices.CreateElement("Invoice")

	header := invoice.CreateElement("InvoiceHeader")
	header.CreateElement("InvoiceNumber").SetText(order.ID)
	header.CreateElement("InvoiceSeriesCode").SetText(invoiceSeriesID)
	header.CreateElement("InvoiceDocumentType").SetText("FC") // factura completa
	header.CreateElement("InvoiceClass").SetText("OO")        // original

	issue := invoice.CreateElement("InvoiceIssueData")
	issue.CreateElement("IssueDate").SetText(order.Date.Format("2006-01-02"))
	issue.CreateElement("InvoiceCurrencyCode").SetText("EUR")
	issue.CreateElement("TaxCurrencyCode").SetText("EUR")
	issue.CreateElement("LanguageName").SetText("es")

	taxes := invoice.CreateElement("TaxesOutputs")
	totalTax := decimal.Zero
	totalBase := decimal.Zero
	for _, tl := range order.TaxBreakdown {
		tax := taxes.CreateElement("Tax")
		tax.CreateElement("TaxTypeCode").SetText("01") // IVA
		tax.CreateElement("TaxRate").SetText(tl.Rate.StringFixed(2))
		taxable := tax.CreateElement("TaxableBase")
		taxable.CreateElement("TotalAmount").SetText(tl.Base.StringFixed(2))
		amount := tax.CreateElement("TaxAmount")
		amount.CreateElement("TotalAmount").SetText(tl.Tax.StringFixed(2))
		totalTax = totalTax.Add(tl.Tax)
		totalBase = totalBase.Add(tl.Base)
	}

	totals := invoice.CreateElement("InvoiceTotals")
	totals.CreateElement("TotalGrossAmount").SetText(totalBase.StringFixed(2))
	totals.CreateElement("TotalGeneralDiscounts").SetText(order.DiscountAmount.StringFixed(2))
	totals.CreateElement("TotalTaxOutputs").SetText(totalTax.StringFixed(2))
	totals.CreateElement("InvoiceTotal").SetText(order.TotalAmount.StringFixed(2))
	totals.CreateElement("TotalExecutableAmount").SetText(order.TotalAmount.StringFixed(2))

	items := invoice.CreateElement("Items")
	for _, it := range order.Items {
		line := items.CreateElement("InvoiceLine")
		line.CreateElement("ItemDescription").SetText(it.Name)
		line.CreateElement("Quantity").SetText(fmt.Sprintf("%d", it.Quantity))
		line.CreateElement("UnitPriceWithoutTax").SetText(it.UnitCost.Add(
			it.UnitCost.Mul(it.MarginPct).Div(decimal.NewFromInt(100)).Round(2)).StringFixed(2))
		line.CreateElement("TotalCost").SetText(it.LineTotal.StringFixed(2))
		line.CreateElement("ArticleCode").SetText(it.Barcode)
	}
}
