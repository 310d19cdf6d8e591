package commerce

const imageFields = `url altText width height`

const moneyFields = `amount currencyCode`

const productFragment = `
fragment ProductFields on Product {
  id
  handle
  title
  description
  productType
  vendor
  tags
  availableForSale
  priceRange {
    minVariantPrice { ` + moneyFields + ` }
    maxVariantPrice { ` + moneyFields + ` }
  }
  images(first: 10) { edges { node { ` + imageFields + ` } } }
  variants(first: 50) {
    edges {
      node {
        id
        title
        availableForSale
        price { ` + moneyFields + ` }
        compareAtPrice { ` + moneyFields + ` }
        selectedOptions { name value }
      }
    }
  }
}
`

const checkoutFragment = `
fragment CheckoutFields on Checkout {
  id
  webUrl
  subtotalPrice { ` + moneyFields + ` }
  totalTax { ` + moneyFields + ` }
  totalPrice { ` + moneyFields + ` }
  lineItems(first: 250) {
    edges {
      node {
        id
        title
        quantity
        variant { id title price { ` + moneyFields + ` } }
      }
    }
  }
}
`

const userErrorFields = `field message code`

const productsQuery = `
query Products($first: Int!) {
  products(first: $first) { edges { node { ...ProductFields } } }
}
` + productFragment

const productByIDQuery = `
query ProductByID($id: ID!) {
  product(id: $id) { ...ProductFields }
}
` + productFragment

const productByHandleQuery = `
query ProductByHandle($handle: String!) {
  product(handle: $handle) { ...ProductFields }
}
` + productFragment

const collectionsQuery = `
query Collections($first: Int!) {
  collections(first: $first) {
    edges { node { id handle title description image { ` + imageFields + ` } } }
  }
}
`

const collectionByHandleQuery = `
query CollectionByHandle($handle: String!, $first: Int!) {
  collection(handle: $handle) {
    id
    handle
    title
    description
    image { ` + imageFields + ` }
    products(first: $first) { edges { node { ...ProductFields } } }
  }
}
` + productFragment

const checkoutCreateMutation = `
mutation CheckoutCreate($input: CheckoutCreateInput!) {
  checkoutCreate(input: $input) {
    checkout { ...CheckoutFields }
    checkoutUserErrors { ` + userErrorFields + ` }
  }
}
` + checkoutFragment

// checkoutLineItemsReplace names its errors userErrors; the alias keeps all payloads alike.
const checkoutLineItemsReplaceMutation = `
mutation CheckoutLineItemsReplace($checkoutId: ID!, $lineItems: [CheckoutLineItemInput!]!) {
  checkoutLineItemsReplace(checkoutId: $checkoutId, lineItems: $lineItems) {
    checkout { ...CheckoutFields }
    checkoutUserErrors: userErrors { ` + userErrorFields + ` }
  }
}
` + checkoutFragment

const checkoutLineItemsAddMutation = `
mutation CheckoutLineItemsAdd($checkoutId: ID!, $lineItems: [CheckoutLineItemInput!]!) {
  checkoutLineItemsAdd(checkoutId: $checkoutId, lineItems: $lineItems) {
    checkout { ...CheckoutFields }
    checkoutUserErrors { ` + userErrorFields + ` }
  }
}
` + checkoutFragment

const checkoutLineItemsUpdateMutation = `
mutation CheckoutLineItemsUpdate($checkoutId: ID!, $lineItems: [CheckoutLineItemUpdateInput!]!) {
  checkoutLineItemsUpdate(checkoutId: $checkoutId, lineItems: $lineItems) {
    checkout { ...CheckoutFields }
    checkoutUserErrors { ` + userErrorFields + ` }
  }
}
` + checkoutFragment

const checkoutLineItemsRemoveMutation = `
mutation CheckoutLineItemsRemove($checkoutId: ID!, $lineItemIds: [ID!]!) {
  checkoutLineItemsRemove(checkoutId: $checkoutId, lineItemIds: $lineItemIds) {
    checkout { ...CheckoutFields }
    checkoutUserErrors { ` + userErrorFields + ` }
  }
}
` + checkoutFragment
