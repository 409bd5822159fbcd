package utils

import (
	"fmt"

	"bazar_back_end/internal/models"
)

// GenerateOrderConfirmationHTML génère le HTML de confirmation de commande
func GenerateOrderConfirmationHTML(order models.Order) string {
	itemsHTML := ""
	for _, item := range order.Items {
		itemsHTML += fmt.Sprintf(`
			<tr>
				<td>%s</td>
				<td>%d</td>
				<td>%.2f€</td>
				<td>%.2f€</td>
			</tr>`, item.Title, item.Quantity, item.UnitPrice, item.UnitPrice*float64(item.Quantity))
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="fr">
<head>
	<meta charset="UTF-8">
	<title>Confirmation de commande</title>
</head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">Confirmation de votre commande</h2>
		<p>Bonjour,</p>
		<p>Votre commande <strong>#%s</strong> a été enregistrée avec succès.</p>

		<h3>Détails de la commande</h3>
		<table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
			<thead>
				<tr style="background-color: #f0f0f0;">
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Produit</th>
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Quantité</th>
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Prix unitaire</th>
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Total</th>
				</tr>
			</thead>
			<tbody>
				%s
			</tbody>
			<tfoot>
				<tr>
					<td colspan="3" style="padding: 10px; text-align: right; font-weight: bold;">Total:</td>
					<td style="padding: 10px; font-weight: bold;">%.2f€</td>
				</tr>
			</tfoot>
		</table>

		<p style="margin-top: 30px; color: #555;">
			Cordialement,<br>
			<strong>L'équipe Bazar</strong>
		</p>
	</div>
</body>
</html>`, order.ID.String()[:8], itemsHTML, order.Total)
}

// GenerateStatusEmailHTML génère le HTML de mise à jour de statut
func GenerateStatusEmailHTML(order models.Order, newStatus string) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="fr">
<head>
	<meta charset="UTF-8">
	<title>Mise à jour de commande</title>
</head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">%s Mise à jour de votre commande</h2>
		<p>%s</p>
		<table style="width: 100%%; margin: 20px 0;">
			<tr>
				<td style="padding: 8px 0; color: #666;"><strong>Numéro de commande:</strong></td>
				<td style="padding: 8px 0; text-align: right;">#%s</td>
			</tr>
			<tr>
				<td style="padding: 8px 0; color: #666;"><strong>Montant total:</strong></td>
				<td style="padding: 8px 0; text-align: right; font-weight: 600;">%.2f€</td>
			</tr>
			<tr>
				<td style="padding: 8px 0; color: #666;"><strong>Nouveau statut:</strong></td>
				<td style="padding: 8px 0; text-align: right; font-weight: 600;">%s</td>
			</tr>
		</table>
		<p style="margin-top: 30px; color: #555;">
			Cordialement,<br>
			<strong>L'équipe Bazar</strong>
		</p>
	</div>
</body>
</html>`, StatusIcon(newStatus), StatusMessage(newStatus), order.ID.String()[:8], order.Total, newStatus)
}

// GenerateSellerApprovalHTML génère le HTML d'approbation de vendeur
func GenerateSellerApprovalHTML(shopName string) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="fr">
<head>
	<meta charset="UTF-8">
	<title>Boutique approuvée</title>
</head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">🎉 Votre boutique est approuvée</h2>
		<p>Bonne nouvelle ! Votre boutique <strong>%s</strong> a été validée par notre équipe.</p>
		<p>Vous pouvez maintenant vous connecter et publier vos produits.</p>
		<p style="margin-top: 30px; color: #555;">
			Cordialement,<br>
			<strong>L'équipe Bazar</strong>
		</p>
	</div>
</body>
</html>`, shopName)
}

// StatusMessage retourne le message associé à un statut de commande
func StatusMessage(status string) string {
	switch status {
	case models.OrderProcessing:
		return "Votre commande est en cours de préparation."
	case models.OrderShipped:
		return "Bonne nouvelle ! Votre commande a été expédiée et est en route vers vous."
	case models.OrderDelivered:
		return "Votre commande a été livrée avec succès. Nous espérons que vous en êtes satisfait !"
	case models.OrderCancelled:
		return "Votre commande a été annulée. Si vous avez des questions, n'hésitez pas à nous contacter."
	case models.OrderPaymentFailed:
		return "Le paiement de votre commande a échoué. Merci de vérifier votre moyen de paiement."
	default:
		return "Le statut de votre commande a été mis à jour."
	}
}

// StatusIcon retourne l'icône associée à un statut de commande
func StatusIcon(status string) string {
	switch status {
	case models.OrderProcessing:
		return "🔧"
	case models.OrderShipped:
		return "📦"
	case models.OrderDelivered:
		return "🎉"
	case models.OrderCancelled:
		return "❌"
	case models.OrderPaymentFailed:
		return "💳"
	default:
		return "📋"
	}
}
